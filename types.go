package challengedb

import (
	"fmt"
	"net/http"
)

// DateFormat is the layout of challenge dates at the API boundary.
const DateFormat = "2006-01-02"

// Challenge is a stored challenge record.
type Challenge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ChallengeInput holds the writable fields of a challenge.
type ChallengeInput struct {
	Name        string `json:"name" validate:"max=255"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Operation is one of the four authenticated challenge operations.
type Operation string

const (
	OpCreate  Operation = "CREATE"
	OpReplace Operation = "REPLACE"
	OpDelete  Operation = "DELETE"
	OpRead    Operation = "READ"
)

// Operations lists every operation in route order.
var Operations = []Operation{OpCreate, OpReplace, OpDelete, OpRead}

// HTTPMethod returns the HTTP method the operation is served on. The method
// name is also the token used in the signed string.
func (o Operation) HTTPMethod() string {
	switch o {
	case OpCreate:
		return http.MethodPost
	case OpReplace:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	case OpRead:
		return http.MethodGet
	default:
		return ""
	}
}

// OperationFromMethod maps an HTTP method to its operation.
func OperationFromMethod(method string) (Operation, error) {
	switch method {
	case http.MethodPost:
		return OpCreate, nil
	case http.MethodPut:
		return OpReplace, nil
	case http.MethodDelete:
		return OpDelete, nil
	case http.MethodGet:
		return OpRead, nil
	default:
		return "", fmt.Errorf("unsupported method: %s (valid methods: POST, PUT, DELETE, GET)", method)
	}
}
