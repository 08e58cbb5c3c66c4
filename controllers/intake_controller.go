package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ggirassol/myIntake-API/services"

	"github.com/gin-gonic/gin"
)

type IntakeController struct {
	intakes *services.IntakeService
}

func NewIntakeController(intakes *services.IntakeService) *IntakeController {
	return &IntakeController{intakes: intakes}
}

// Nutrient fields bind as pointers so an explicit 0 is not mistaken for a
// missing field; the same goes for intakeIndex on edits.
type AddIntakeInput struct {
	UserID  string   `json:"userId"`
	Date    string   `json:"date"`
	Meal    string   `json:"meal"`
	Kcal    *float64 `json:"kcal"`
	Protein *float64 `json:"protein"`
	Carbs   *float64 `json:"carbs"`
}

// bindIntakeError keeps the message taxonomy intact when binding fails: a
// wrongly-typed nutrient value (say "kcal": "abc") is a nutrient problem, not
// a missing field.
func bindIntakeError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "kcal", "protein", "carbs":
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid nutrient values"})
			return
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
}

func (ic *IntakeController) AddIntake(c *gin.Context) {
	var input AddIntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindIntakeError(c, err)
		return
	}

	intake, err := ic.intakes.RecordIntake(c.Request.Context(),
		input.UserID, input.Date, input.Meal, input.Kcal, input.Protein, input.Carbs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"intake": intake})
}

type EditIntakeInput struct {
	UserID      string   `json:"userId"`
	IntakeID    string   `json:"intakeId"`
	IntakeIndex *int     `json:"intakeIndex"`
	Meal        string   `json:"meal"`
	Kcal        *float64 `json:"kcal"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
}

func (ic *IntakeController) EditIntake(c *gin.Context) {
	var input EditIntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindIntakeError(c, err)
		return
	}

	intake, err := ic.intakes.EditEntry(c.Request.Context(),
		input.UserID, input.IntakeID, input.IntakeIndex, input.Meal, input.Kcal, input.Protein, input.Carbs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intake": intake})
}

func (ic *IntakeController) GetIntakeByDate(c *gin.Context) {
	userID := c.Param("userId")
	date := c.Param("date")

	// ?fields=totals skips the entry ledger for clients that only render the
	// day's running totals.
	if c.Query("fields") == "totals" {
		totals, err := ic.intakes.GetTotalsByDate(c.Request.Context(), userID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"currIntake": totals})
		return
	}

	intake, err := ic.intakes.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intake": intake})
}

type WeeklyInput struct {
	UserID string `json:"userId"`
	Date   string `json:"date"`
}

func (ic *IntakeController) Weekly(c *gin.Context) {
	var input WeeklyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
		return
	}

	summary, err := ic.intakes.GetWeek(c.Request.Context(), input.UserID, input.Date)
	if errors.Is(err, services.ErrEmptyWeek) {
		c.JSON(http.StatusOK, gin.H{"msg": "No intakes registered for this week"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type MonthlyInput struct {
	UserID string `json:"userId"`
}

func (ic *IntakeController) Monthly(c *gin.Context) {
	var input MonthlyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
		return
	}

	summary, err := ic.intakes.GetMonthly(c.Request.Context(), input.UserID)
	if errors.Is(err, services.ErrNoIntakesEver) {
		c.JSON(http.StatusOK, gin.H{"msg": "No intake has ever been registered"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthlyIntakes": summary})
}
