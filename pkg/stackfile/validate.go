package stackfile

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/stack"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("elementid", func(fl validator.FieldLevel) bool {
		return errors.ValidateElementID(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("axis", func(fl validator.FieldLevel) bool {
		_, ok := stack.ParseAxis(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation("alignment", func(fl validator.FieldLevel) bool {
		_, ok := stack.ParseAlignment(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation("distribution", func(fl validator.FieldLevel) bool {
		_, ok := stack.ParseDistribution(fl.Field().String())
		return ok
	})
}

// Validate checks the document's fields, its configuration, and that steps
// only name declared items.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", describe(err))
	}
	if _, err := d.Config(); err != nil {
		return err
	}

	known := make(map[string]bool, len(d.Items))
	for i, it := range d.Items {
		if known[it.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "items[%d]: duplicate id %q", i, it.ID)
		}
		known[it.ID] = true
	}

	for i, s := range d.Steps {
		if err := s.check(known); err != nil {
			return errors.New(errors.ErrCodeInvalidDocument, "steps[%d] (%s): %s", i, s.Action, err)
		}
	}
	return nil
}

func (s Step) check(known map[string]bool) error {
	var names []string
	switch s.Action {
	case ActionHide, ActionShow, ActionRemove:
		if len(s.Items) == 0 {
			return fmt.Errorf("needs at least one item")
		}
		names = s.Items
	case ActionAnimate:
		if len(s.Hide)+len(s.Show) == 0 {
			return fmt.Errorf("needs hide or show")
		}
		names = append(append(names, s.Hide...), s.Show...)
	case ActionAdvance:
		if s.Duration <= 0 {
			return fmt.Errorf("needs a positive duration")
		}
	}
	for _, n := range names {
		if !known[n] {
			return fmt.Errorf("unknown item %q", n)
		}
	}
	return nil
}

// describe turns validator errors into "field: rule" phrases.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Document.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s", field, rule))
	}
	return strings.Join(parts, "; ")
}
