package handler

// responseEnvelope is the uniform wrapper returned by every auth operation.
// A fresh value is built per branch; envelopes are never shared or mutated
// across requests.
type responseEnvelope struct {
	StatusCode    int      `json:"statusCode"`
	IsSuccess     bool     `json:"isSuccess"`
	Result        any      `json:"result"`
	ErrorMessages []string `json:"errorMessages"`
}

func okEnvelope(code int, result any) responseEnvelope {
	return responseEnvelope{
		StatusCode:    code,
		IsSuccess:     true,
		Result:        result,
		ErrorMessages: []string{},
	}
}

func failEnvelope(code int, messages ...string) responseEnvelope {
	return responseEnvelope{
		StatusCode:    code,
		IsSuccess:     false,
		ErrorMessages: messages,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
