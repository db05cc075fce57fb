package domain

import "encoding/json"

// CatalogItem es un item del catálogo tal como lo entrega el colaborador
// externo. Se conserva como mapa para no perder campos que este servicio
// no conoce; los campos de interacción se agregan sobre la misma
// estructura al momento de responder.
type CatalogItem map[string]any

// ItemKey devuelve el id del item como texto, que es la clave usada en el
// documento de interacciones. Requiere que el payload se haya decodificado
// con json.Number para no perder precisión en ids numéricos.
func (it CatalogItem) ItemKey() (string, bool) {
	switch v := it["id"].(type) {
	case json.Number:
		return v.String(), true
	case string:
		return v, true
	}
	return "", false
}

// ChannelIDKey devuelve el canal al que pertenece un item individual,
// leído del campo "channel" del payload del catálogo.
func (it CatalogItem) ChannelIDKey() (int64, bool) {
	num, ok := it["channel"].(json.Number)
	if !ok {
		return 0, false
	}
	id, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return id, true
}

// ChannelItems es la respuesta del catálogo para un canal: la información
// del canal más su listado de items.
type ChannelItems struct {
	Channel json.RawMessage `json:"channel"`
	Items   []CatalogItem   `json:"items"`
}
