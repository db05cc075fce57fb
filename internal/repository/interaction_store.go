package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"podcast-hub/internal/domain"
)

// Outcome describe el resultado de una mutación de interacciones. Los
// estados de negocio esperados (ya existe, no encontrado) se devuelven
// como valores, no como errores; el canal de error queda para fallas
// reales del store.
type Outcome string

const (
	OutcomeRecorded      Outcome = "recorded"
	OutcomeAlreadyExists Outcome = "already_exists"
	OutcomeFailed        Outcome = "failed"
	OutcomeRemoved       Outcome = "removed"
	OutcomeNotFound      Outcome = "not_found"
)

// InteractionStore define el contrato de persistencia para los documentos
// de interacción por canal. Es el único dueño de su mutación.
type InteractionStore interface {
	Get(ctx context.Context, channelID int64) (domain.InteractionDoc, bool, error)
	Record(ctx context.Context, userID string, channelID, podcastID int64, action domain.ActionType, content string) (Outcome, error)
	Remove(ctx context.Context, userID string, channelID, podcastID int64, action domain.ActionType) (Outcome, error)
}

// PgInteractionStore implementa InteractionStore sobre una fila jsonb por
// canal. Cada mutación es una única sentencia; la atomicidad por fila de
// Postgres serializa mutaciones concurrentes al mismo canal sin locks en
// el proceso.
type PgInteractionStore struct {
	pool *pgxpool.Pool
}

func NewPgInteractionStore(pool *pgxpool.Pool) *PgInteractionStore {
	return &PgInteractionStore{pool: pool}
}

// recordSetQuery agrega una entrada al arreglo "<item>.<action>" con
// semántica de conjunto: el WHERE descarta la actualización si la entrada
// ya está contenida, y en ese caso no se devuelve fila.
const recordSetQuery = `
	INSERT INTO channel_interactions AS ci (channel_id, doc)
	VALUES ($1, jsonb_build_object($2::text, jsonb_build_object($3::text, $4::jsonb)))
	ON CONFLICT (channel_id) DO UPDATE SET doc = ci.doc || jsonb_build_object(
		$2::text,
		coalesce(ci.doc -> $2::text, '{}'::jsonb) || jsonb_build_object(
			$3::text,
			coalesce(ci.doc #> ARRAY[$2::text, $3::text], '[]'::jsonb) || $4::jsonb
		)
	)
	WHERE NOT coalesce(ci.doc #> ARRAY[$2::text, $3::text], '[]'::jsonb) @> $4::jsonb
	RETURNING 1
`

// recordAppendQuery agrega una entrada sin deduplicar (comentarios).
const recordAppendQuery = `
	INSERT INTO channel_interactions AS ci (channel_id, doc)
	VALUES ($1, jsonb_build_object($2::text, jsonb_build_object($3::text, $4::jsonb)))
	ON CONFLICT (channel_id) DO UPDATE SET doc = ci.doc || jsonb_build_object(
		$2::text,
		coalesce(ci.doc -> $2::text, '{}'::jsonb) || jsonb_build_object(
			$3::text,
			coalesce(ci.doc #> ARRAY[$2::text, $3::text], '[]'::jsonb) || $4::jsonb
		)
	)
	RETURNING 1
`

// removeQuery filtra del arreglo todas las entradas del usuario. El WHERE
// exige que exista al menos una coincidencia; sin fila devuelta no hubo
// nada que borrar.
const removeQuery = `
	UPDATE channel_interactions SET doc = jsonb_set(doc, ARRAY[$2::text, $3::text],
		coalesce((
			SELECT jsonb_agg(entry)
			FROM jsonb_array_elements(doc #> ARRAY[$2::text, $3::text]) AS entry
			WHERE entry ->> 'user_id' <> $4
		), '[]'::jsonb))
	WHERE channel_id = $1
	  AND coalesce(doc #> ARRAY[$2::text, $3::text], '[]'::jsonb) @> $5::jsonb
	RETURNING 1
`

func (s *PgInteractionStore) Get(ctx context.Context, channelID int64) (domain.InteractionDoc, bool, error) {
	const query = `
		SELECT doc
		FROM channel_interactions
		WHERE channel_id = $1
	`
	var raw []byte
	err := s.pool.QueryRow(ctx, query, channelID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load interaction doc: %w", err)
	}
	var doc domain.InteractionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("decode interaction doc: %w", err)
	}
	return doc, true, nil
}

func (s *PgInteractionStore) Record(ctx context.Context, userID string, channelID, podcastID int64, action domain.ActionType, content string) (Outcome, error) {
	itemKey := strconv.FormatInt(podcastID, 10)

	// Único punto de despacho por tipo de acción: agregar una acción
	// nueva obliga a decidir acá qué mutación le corresponde.
	var (
		query string
		entry any
	)
	switch action {
	case domain.ActionLike, domain.ActionBookMark:
		query = recordSetQuery
		entry = []domain.Reaction{{UserID: userID}}
	case domain.ActionComment:
		query = recordAppendQuery
		entry = []domain.Comment{{UserID: userID, Content: content}}
	default:
		return OutcomeFailed, fmt.Errorf("unknown action_type %q", action)
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("encode interaction entry: %w", err)
	}

	var one int
	err = s.pool.QueryRow(ctx, query, channelID, itemKey, string(action), entryJSON).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		if action == domain.ActionComment {
			// Un append nunca debería quedar sin efecto; se reporta
			// en vez de tragarse el resultado.
			return OutcomeFailed, nil
		}
		return OutcomeAlreadyExists, nil
	}
	if err != nil {
		return OutcomeFailed, fmt.Errorf("record interaction: %w", err)
	}
	return OutcomeRecorded, nil
}

func (s *PgInteractionStore) Remove(ctx context.Context, userID string, channelID, podcastID int64, action domain.ActionType) (Outcome, error) {
	if !action.Valid() {
		return OutcomeFailed, fmt.Errorf("unknown action_type %q", action)
	}
	itemKey := strconv.FormatInt(podcastID, 10)

	match, err := json.Marshal([]domain.Reaction{{UserID: userID}})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("encode removal match: %w", err)
	}

	var one int
	err = s.pool.QueryRow(ctx, removeQuery, channelID, itemKey, string(action), userID, match).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return OutcomeFailed, fmt.Errorf("remove interaction: %w", err)
	}
	return OutcomeRemoved, nil
}
