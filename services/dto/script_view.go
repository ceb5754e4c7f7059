package dto

import "itdocsapi/models"

// ScriptView is the flat representation of a script.
type ScriptView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Code     string `json:"code"`
	Linenos  bool   `json:"linenos"`
	Language string `json:"language"`
	Style    string `json:"style"`
}

// NewScriptView converts a stored script.
func NewScriptView(s models.Script) ScriptView {
	return ScriptView{
		ID:       s.ID,
		Title:    s.Title,
		Code:     s.Code,
		Linenos:  s.Linenos,
		Language: s.Language,
		Style:    s.Style,
	}
}
