package domain

import (
	"encoding/json"
	"fmt"
)

// ActionType identifica el tipo de interacción sobre un item.
type ActionType string

const (
	ActionLike     ActionType = "like"
	ActionBookMark ActionType = "book_mark"
	ActionComment  ActionType = "comment"
)

// Valid indica si el valor pertenece al conjunto cerrado de acciones.
func (a ActionType) Valid() bool {
	switch a {
	case ActionLike, ActionBookMark, ActionComment:
		return true
	}
	return false
}

func (a *ActionType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := ActionType(raw)
	if !parsed.Valid() {
		return fmt.Errorf("unknown action_type %q", raw)
	}
	*a = parsed
	return nil
}

// Reaction es una entrada de like o book_mark; a lo sumo una por usuario.
type Reaction struct {
	UserID string `json:"user_id"`
}

// Comment es una entrada de comentario; se permiten duplicados y se
// conservan en orden de inserción.
type Comment struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// ItemInteractions agrupa las interacciones registradas sobre un item.
type ItemInteractions struct {
	Like     []Reaction `json:"like,omitempty"`
	BookMark []Reaction `json:"book_mark,omitempty"`
	Comment  []Comment  `json:"comment,omitempty"`
}

// InteractionDoc es el documento por canal: item id (como texto) a sus
// interacciones. Solo existen documentos para canales con al menos una
// interacción registrada.
type InteractionDoc map[string]ItemInteractions

// HasReaction indica si el usuario ya reaccionó con la acción dada.
func (i ItemInteractions) HasReaction(action ActionType, userID string) bool {
	var entries []Reaction
	switch action {
	case ActionLike:
		entries = i.Like
	case ActionBookMark:
		entries = i.BookMark
	default:
		return false
	}
	for _, e := range entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
