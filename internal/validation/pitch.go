package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"pitchdeck/internal/models"
)

const (
	MaxImageSize = 5_000_000

	fieldImage = "image"
)

// FieldErrors maps a form field to the first message raised for it.
type FieldErrors map[string]string

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	return &Validator{validate: v}
}

// pitchCandidate flattens the image into three checks reported under the same field.
type pitchCandidate struct {
	Title       string `form:"title" validate:"min=3,max=100"`
	Description string `form:"description" validate:"min=10,max=500"`
	Category    string `form:"category" validate:"min=3,max=20"`
	HasImage    bool   `form:"image" validate:"required"`
	ImageSize   int64  `form:"image" validate:"max=5000000"`
	ImageType   string `form:"image" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
	Pitch       string `form:"pitch" validate:"min=10"`
}

func (v *Validator) ValidatePitch(form models.PitchForm, pitch string) FieldErrors {
	candidate := pitchCandidate{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		HasImage:    form.Image != nil && form.Image.Size() > 0,
		ImageSize:   form.Image.Size(),
		Pitch:       pitch,
	}
	if candidate.HasImage {
		candidate.ImageType = DetectImageType(form.Image.Data)
	}

	err := v.validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return FieldErrors{"form": err.Error()}
	}

	fieldErrors := make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		if _, seen := fieldErrors[fe.Field()]; seen {
			continue
		}
		fieldErrors[fe.Field()] = message(fe)
	}

	return fieldErrors
}

// MsgImageTooLarge is reported for images over MaxImageSize, including ones cut off by the request body limit.
const MsgImageTooLarge = "Max image size is 5MB"

// DetectImageType sniffs the MIME type from the file content rather than the declared one.
func DetectImageType(data []byte) string {
	return mimetype.Detect(data).String()
}

func message(fe validator.FieldError) string {
	if fe.Field() == fieldImage {
		switch fe.Tag() {
		case "required":
			return "Image is required"
		case "max":
			return MsgImageTooLarge
		case "oneof":
			return "Only .jpg, .png and .webp formats are supported"
		}
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "required":
		return "Required"
	}

	return "Invalid value"
}
