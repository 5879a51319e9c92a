package faceapi

type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Face struct {
	Region  Region             `json:"region"`
	Emotion map[string]float64 `json:"emotion"`
}

type ErrorDetail struct {
	Message string `json:"message"`
}

type Result struct {
	Faces []Face      `json:"faces"`
	Error ErrorDetail `json:"detail"`
}
