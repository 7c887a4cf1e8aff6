package reviews

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

// ReviewInput is a review as submitted through the page's form. Field values
// are the raw form strings.
type ReviewInput struct {
	RestaurantID string `form:"restaurant_id" validate:"required,number,restaurantid"`
	Name         string `form:"name" validate:"required,max=100"`
	Rating       string `form:"rating" validate:"required,rating"`
	Comments     string `form:"comments" validate:"required,max=4000"`
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid review: " + strings.Join(e.Fields, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	if err := v.RegisterValidation("rating", validRating); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("restaurantid", validRestaurantID); err != nil {
		panic(err)
	}
	return v
}

func validRating(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && domain.ValidRating(f)
}

// validRestaurantID accepts positive ids that fit an int64.
func validRestaurantID(fl validator.FieldLevel) bool {
	id, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil && id > 0
}

func (in *ReviewInput) normalize() {
	in.RestaurantID = strings.TrimSpace(in.RestaurantID)
	in.Name = strings.TrimSpace(in.Name)
	in.Rating = strings.TrimSpace(in.Rating)
	in.Comments = strings.TrimSpace(in.Comments)
}

// Validate reports every failing field at once. Values are checked as given;
// AddReview trims them first.
func (in ReviewInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}
