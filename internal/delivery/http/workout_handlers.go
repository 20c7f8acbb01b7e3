package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
)

const (
	exerciseNotFound = "Exercise not found"
	workoutNotFound  = "Workout not found"
)

func (h *Handlers) ListExercises(c *gin.Context) {
	exercises, err := h.workouts.ListExercises(c.Request.Context(), repo.ExerciseFilter{
		Category:    c.Query("category"),
		MuscleGroup: c.Query("muscleGroup"),
		Difficulty:  c.Query("difficulty"),
		Equipment:   c.Query("equipment"),
	})
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, exercises)
}

func (h *Handlers) GetExercise(c *gin.Context) {
	id, valid := idParam(c, exerciseNotFound)
	if !valid {
		return
	}
	e, err := h.workouts.GetExercise(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: exerciseNotFound})
		return
	}
	respond(c, http.StatusOK, "", e)
}

func (h *Handlers) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	e, err := h.workouts.CreateExercise(c.Request.Context(), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusCreated, "Exercise created successfully", e)
}

func (h *Handlers) ListWorkouts(c *gin.Context) {
	workouts, err := h.workouts.ListWorkouts(c.Request.Context(), repo.WorkoutFilter{
		Type:        c.Query("type"),
		Difficulty:  c.Query("difficulty"),
		MuscleGroup: c.Query("muscleGroup"),
		CreatedBy:   optionalUUID(c, "createdBy"),
	})
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, workouts)
}

func (h *Handlers) GetWorkout(c *gin.Context) {
	id, valid := idParam(c, workoutNotFound)
	if !valid {
		return
	}
	w, err := h.workouts.GetWorkout(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: workoutNotFound})
		return
	}
	respond(c, http.StatusOK, "", w)
}

func (h *Handlers) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	w, err := h.workouts.CreateWorkout(c.Request.Context(), currentUser(c), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{Server: "Server error during workout creation"})
		return
	}
	respond(c, http.StatusCreated, "Workout created successfully", w)
}

func (h *Handlers) UpdateWorkout(c *gin.Context) {
	id, valid := idParam(c, workoutNotFound)
	if !valid {
		return
	}
	var req UpdateWorkoutRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	w, err := h.workouts.UpdateWorkout(c.Request.Context(), currentUser(c), id, req.toUpdate())
	if err != nil {
		h.fail(c, err, errorText{NotFound: workoutNotFound, Forbidden: "Not authorized to update this workout"})
		return
	}
	respond(c, http.StatusOK, "Workout updated successfully", w)
}

func (h *Handlers) DeleteWorkout(c *gin.Context) {
	id, valid := idParam(c, workoutNotFound)
	if !valid {
		return
	}
	if err := h.workouts.DeleteWorkout(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err, errorText{NotFound: workoutNotFound, Forbidden: "Not authorized to delete this workout"})
		return
	}
	respond(c, http.StatusOK, "Workout deleted successfully", nil)
}

func (h *Handlers) LogWorkout(c *gin.Context) {
	id, valid := idParam(c, workoutNotFound)
	if !valid {
		return
	}
	var req WorkoutLogRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	l, err := h.workouts.LogWorkout(c.Request.Context(), currentUser(c), id, req.toModel())
	if err != nil {
		h.fail(c, err, errorText{NotFound: workoutNotFound, Server: "Server error during workout logging"})
		return
	}
	respond(c, http.StatusCreated, "Workout logged successfully", l)
}

func (h *Handlers) ListWorkoutLogs(c *gin.Context) {
	p := pageQuery(c)
	logs, total, err := h.workouts.ListLogs(c.Request.Context(), currentUser(c).ID, p)
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	n := len(logs)
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &n,
		Total:      &total,
		Pagination: &Pagination{Page: p.Page, Pages: pages(total, p.Limit)},
		Data:       orEmpty(logs),
	})
}
