package api

type screenPayload struct {
	Index  int `json:"index"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type screensResponse struct {
	Screens []screenPayload `json:"screens"`
}

type errorResponse struct {
	Error string `json:"error"`
}
