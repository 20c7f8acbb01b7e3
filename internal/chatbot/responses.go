package chatbot

var greetings = []string{
	"Hello! I'm FitSphere AI, your personal fitness assistant. How can I help you today?",
	"Hi there! Ready to crush your fitness goals? What can I help you with?",
	"Welcome to FitSphere! I'm here to help you with your fitness journey.",
	"Hey! I'm your AI fitness buddy. Let's make your fitness dreams a reality!",
}

var workoutAdvice = map[string][]string{
	"beginner": {
		"For beginners, I recommend starting with bodyweight exercises: push-ups, squats, lunges, and planks. Start with 3 sets of 10 reps each, 3 times per week.",
		"Begin with basic movements: wall push-ups, assisted squats, and walking. Focus on form over intensity.",
		"Start with 20-30 minute sessions: 10 min cardio (walking), 10 min strength (bodyweight), 10 min stretching.",
	},
	"intermediate": {
		"Try circuit training: 30 seconds each of burpees, mountain climbers, jumping jacks, rest 30 seconds, repeat 3-5 rounds.",
		"Incorporate weights: dumbbell squats, bench press, deadlifts. 3-4 sets of 8-12 reps.",
		"Mix cardio and strength: 20 min HIIT, 20 min strength training, 10 min cool-down.",
	},
	"advanced": {
		"Advanced workout: supersets with heavy weights, plyometric exercises, and high-intensity intervals.",
		"Try complex movements: Olympic lifts, advanced calisthenics, and sport-specific training.",
		"Advanced circuit: 45 seconds work, 15 seconds rest, 6-8 exercises, 4-5 rounds.",
	},
}

var nutritionAdvice = map[string][]string{
	"weight_loss": {
		"For weight loss: Create a 500-calorie daily deficit. Eat lean proteins, complex carbs, and healthy fats. Track your calories.",
		"Weight loss diet: High protein (1.6g per kg bodyweight), moderate carbs, low fat. Eat in a calorie deficit.",
		"Focus on whole foods: chicken, fish, vegetables, fruits, whole grains. Avoid processed foods and sugary drinks.",
	},
	"muscle_gain": {
		"For muscle gain: Eat 300-500 calories above maintenance. 1.6-2.2g protein per kg bodyweight daily.",
		"Muscle building diet: High protein, moderate carbs, moderate fat. Eat every 3-4 hours.",
		"Post-workout: 20-30g protein within 30 minutes. Include carbs for glycogen replenishment.",
	},
	"maintenance": {
		"Maintenance diet: Balanced macronutrients - 40% carbs, 30% protein, 30% fat. Eat at maintenance calories.",
		"Focus on nutrient-dense foods: vegetables, fruits, lean proteins, whole grains, healthy fats.",
		"Eat mindfully and listen to your body's hunger and fullness cues.",
	},
}

type dietPlan struct {
	breakfast, lunch, dinner, snacks string
}

var dietPlans = map[string]dietPlan{
	"vegan": {
		breakfast: "Oatmeal with berries, chia seeds, and almond milk. Add a banana for extra energy.",
		lunch:     "Quinoa bowl with chickpeas, roasted vegetables, and tahini dressing.",
		dinner:    "Lentil curry with brown rice and steamed broccoli.",
		snacks:    "Hummus with carrot sticks, mixed nuts, or a protein smoothie with plant-based protein powder.",
	},
	"vegetarian": {
		breakfast: "Greek yogurt with granola and honey, or scrambled eggs with whole grain toast.",
		lunch:     "Mediterranean salad with feta cheese, olives, and olive oil dressing.",
		dinner:    "Grilled halloumi with quinoa and roasted vegetables.",
		snacks:    "Cottage cheese with fruit, hard-boiled eggs, or protein bars.",
	},
	"high_protein": {
		breakfast: "Protein pancakes with whey protein, eggs, and oats.",
		lunch:     "Grilled chicken breast with sweet potato and green vegetables.",
		dinner:    "Salmon with quinoa and asparagus.",
		snacks:    "Protein shake, Greek yogurt, or turkey jerky.",
	},
}

type bodyPart struct {
	keywords  []string
	title     string
	exercises string
	tip       string
}

var bodyParts = []bodyPart{
	{[]string{"chest", "push", "bench", "pecs"}, "💪 **Chest Exercises**",
		"Push-ups, Bench press, Dumbbell flyes, Incline press, Decline push-ups",
		"Start with 3 sets of 10-12 reps. Focus on proper form and controlled movements."},
	{[]string{"back", "pull", "row", "lats"}, "🏋️ **Back Exercises**",
		"Pull-ups, Deadlifts, Rows, Lat pulldowns, Face pulls",
		"Focus on proper form and mind-muscle connection."},
	{[]string{"legs", "squat", "thigh", "quads", "hamstrings"}, "🦵 **Leg Exercises**",
		"Squats, Deadlifts, Lunges, Leg press, Calf raises",
		"Start with bodyweight squats and progress gradually."},
	{[]string{"shoulder", "deltoid", "delts"}, "💪 **Shoulder Exercises**",
		"Overhead press, Lateral raises, Front raises, Rear delt flyes, Shrugs",
		"Start light to avoid injury and focus on form."},
	{[]string{"arm", "bicep", "tricep", "forearm"}, "💪 **Arm Exercises**",
		"Bicep curls, Tricep dips, Hammer curls, Skull crushers, Preacher curls",
		"Include both biceps and triceps for balanced development."},
	{[]string{"core", "abs", "stomach", "six pack"}, "🔥 **Core Exercises**",
		"Planks, Crunches, Russian twists, Leg raises, Mountain climbers",
		"Focus on stability, control, and breathing."},
}

var motivation = []string{
	"Remember: Progress takes time. Focus on consistency over perfection.",
	"Every workout makes you stronger. Keep pushing forward!",
	"Your future self will thank you for the work you put in today.",
	"Small steps lead to big changes. Stay committed to your goals.",
	"You're stronger than you think. Believe in yourself!",
}

const helpText = `🤖 **I can help you with:**

💪 **Workouts**: Beginner to advanced training plans
🥗 **Nutrition**: Diet advice and meal planning
📊 **Fitness Goals**: Weight loss, muscle gain, maintenance
🎯 **Specific Exercises**: Chest, back, legs, arms, core
💪 **Motivation**: Encouragement and tips
📋 **Diet Plans**: Vegan, vegetarian, high-protein options

Just ask me anything about fitness and nutrition!`

const fallback = "I'm here to help with your fitness journey! Ask me about workouts, nutrition, diet plans, or specific exercises. What would you like to know? 💪"

const dietPlanTemplate = `Here's your %s diet plan:

🌅 Breakfast: %s

🌞 Lunch: %s

🌙 Dinner: %s

🍎 Snacks: %s

💡 Tips:
• Eat every 3-4 hours
• Stay hydrated (8-10 glasses of water daily)
• Include protein with every meal
• Choose whole foods over processed options
• Listen to your body's hunger cues

Would you like me to customize this plan further based on your specific goals?`
