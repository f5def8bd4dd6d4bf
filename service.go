package challengedb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ChallengeRepo defines the interface for challenge persistence.
// Implementations must handle concurrent access safely.
//
// All methods accept a context for cancellation and timeout control.
// Implementations should respect context cancellation and return appropriate errors.
type ChallengeRepo interface {
	// Create inserts a new challenge.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - in: ChallengeInput with name, description and date
	//
	// Returns:
	//   - int64: The identifier assigned by storage
	//   - error: Any database error
	Create(ctx context.Context, in ChallengeInput) (int64, error)

	// Update overwrites the writable fields of the challenge with the given id.
	// Updating an id that does not exist is not an error.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - id: The challenge identifier
	//   - in: ChallengeInput with the new field values
	//
	// Returns:
	//   - error: Any database error
	Update(ctx context.Context, id int64, in ChallengeInput) error

	// Delete removes the challenge with the given id.
	// Deleting an id that does not exist is not an error.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - id: The challenge identifier
	//
	// Returns:
	//   - error: Any database error
	Delete(ctx context.Context, id int64) error

	// Get retrieves a challenge by id.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - id: The challenge identifier
	//
	// Returns:
	//   - Challenge: The stored record if found
	//   - error: ErrNotFound if id doesn't exist, or other database errors
	Get(ctx context.Context, id int64) (Challenge, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput checks a ChallengeInput. The returned error is an *InputError
// describing the first failing field.
func ValidateInput(in ChallengeInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &InputError{Field: "challenge", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &InputError{Field: fe.Field(), Reason: "is required"}
	case "datetime":
		return &InputError{Field: fe.Field(), Reason: "must be a YYYY-MM-DD date"}
	case "max":
		return &InputError{Field: fe.Field(), Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	default:
		return &InputError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " validation"}
	}
}

// ChallengeService combines input validation with a ChallengeRepo.
type ChallengeService struct {
	repo ChallengeRepo
}

func NewChallengeService(repo ChallengeRepo) (*ChallengeService, error) {
	if repo == nil {
		return nil, errors.New("new challenge service: repo cannot be nil")
	}
	return &ChallengeService{repo: repo}, nil
}

// Create validates in and stores it as a new challenge.
//
// Returns:
//   - int64: The identifier assigned by storage
//   - error: ErrInvalidInput for bad input, or wrapped repository errors
func (s *ChallengeService) Create(ctx context.Context, in ChallengeInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("create challenge: %w", err)
	}

	if err := ValidateInput(in); err != nil {
		return 0, fmt.Errorf("create challenge: %w", err)
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("create challenge: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("create challenge: no id assigned: %w", ErrInternal)
	}

	slog.Debug("challenge created", "id", id)
	return id, nil
}

// Replace validates in and overwrites the challenge with the given id.
//
// Errors are wrapped with the call site; Cause recovers the validation or
// storage error that the client is shown.
func (s *ChallengeService) Replace(ctx context.Context, id int64, in ChallengeInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("replace challenge: %w", err)
	}

	if id <= 0 {
		return fmt.Errorf("replace challenge: %w", &InputError{Field: "id", Reason: fmt.Sprintf("must be positive, got %d", id)})
	}

	if err := ValidateInput(in); err != nil {
		return fmt.Errorf("replace challenge %d: %w", id, err)
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		return fmt.Errorf("replace challenge %d: %w", id, err)
	}

	slog.Debug("challenge replaced", "id", id)
	return nil
}

func (s *ChallengeService) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete challenge %d: %w", id, err)
	}

	return nil
}

func (s *ChallengeService) Get(ctx context.Context, id int64) (Challenge, error) {
	if err := ctx.Err(); err != nil {
		return Challenge{}, fmt.Errorf("get challenge: %w", err)
	}

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Challenge{}, fmt.Errorf("get challenge %d: %w", id, err)
	}

	return c, nil
}
