package pkg

// AppError is the error shape surfaced by HTTP handlers. Code is a stable
// machine-readable identifier so callers can branch without string-matching
// (e.g. QB_NOT_CONNECTED).

type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// HTTPError is the JSON body returned for failures.
type HTTPError struct {
	ErrorCode string `json:"error"`
	Message   string `json:"message"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{ErrorCode: e.Code, Message: e.Message}
}
