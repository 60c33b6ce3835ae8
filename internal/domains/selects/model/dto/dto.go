package dto

// Option is one entry of a picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
