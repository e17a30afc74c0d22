package dto

type TryEndpointRequest struct {
	Method string `json:"method" validate:"required,oneof=GET POST"`
	Path   string `json:"path" validate:"required"`
}

type TryEndpointResponse struct {
	Status    int         `json:"status"`
	LatencyMS int         `json:"latency_ms"`
	Body      interface{} `json:"body"`
}
