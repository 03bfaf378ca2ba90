package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var (
	_ repository.NoticeRepository      = (*NoticeRepo)(nil)
	_ repository.ChatMessageRepository = (*ChatMessageRepo)(nil)
)

const noticeColumns = `id, accessory_id, title, brand, language, file_key, content_type, content, keywords, indexed, created_at, updated_at`

// NoticeRepo implementación de NoticeRepository. La búsqueda usa la columna generada search_vector.
type NoticeRepo struct {
	q Querier
}

// NewNoticeRepository construye el adaptador.
func NewNoticeRepository(q Querier) *NoticeRepo {
	return &NoticeRepo{q: q}
}

func scanNotice(row rowScanner, extra ...any) (*entity.Notice, error) {
	var n entity.Notice
	var accessory *string
	dest := []any{&n.ID, &accessory, &n.Title, &n.Brand, &n.Language, &n.FileKey, &n.ContentType, &n.Content, &n.Keywords, &n.Indexed, &n.CreatedAt, &n.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	n.AccessoryID = deref(accessory)
	if n.Keywords == nil {
		n.Keywords = []string{}
	}
	return &n, nil
}

func keywordsOrEmpty(k []string) []string {
	if k == nil {
		return []string{}
	}
	return k
}

func (r *NoticeRepo) Create(ctx context.Context, n *entity.Notice) error {
	_, err := r.q.Exec(ctx, `INSERT INTO notices (`+noticeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		n.ID, nullable(n.AccessoryID), n.Title, n.Brand, n.Language, n.FileKey, n.ContentType, n.Content,
		keywordsOrEmpty(n.Keywords), n.Indexed, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepo) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	n, err := scanNotice(r.q.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return n, nil
}

// List lista las notices por título.
func (r *NoticeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Notice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+noticeColumns+` FROM notices ORDER BY title, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NoticeRepo) Update(ctx context.Context, n *entity.Notice) error {
	_, err := r.q.Exec(ctx, `
		UPDATE notices SET accessory_id = $2, title = $3, brand = $4, language = $5, updated_at = $6
		WHERE id = $1`,
		n.ID, nullable(n.AccessoryID), n.Title, n.Brand, n.Language, n.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update notice: %w", err)
	}
	return nil
}

// SetIndex guarda el texto extraído y las palabras clave; search_vector se recalcula solo.
func (r *NoticeRepo) SetIndex(ctx context.Context, id, content string, keywords []string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notices SET content = $2, keywords = $3, indexed = true, updated_at = now() WHERE id = $1`,
		id, content, keywordsOrEmpty(keywords),
	)
	if err != nil {
		return fmt.Errorf("index notice: %w", err)
	}
	return nil
}

// Search ejecuta la consulta de texto completo en francés, ordenada por relevancia.
func (r *NoticeRepo) Search(ctx context.Context, tsquery string, limit int) ([]entity.NoticeHit, error) {
	query := `
		SELECT ` + noticeColumns + `, ts_rank(search_vector, q) AS rank
		FROM notices, to_tsquery('french', $1) q
		WHERE search_vector @@ q
		ORDER BY rank DESC, title
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, tsquery, limit)
	if err != nil {
		return nil, fmt.Errorf("search notices: %w", err)
	}
	defer rows.Close()
	var hits []entity.NoticeHit
	for rows.Next() {
		var rank float32
		n, err := scanNotice(rows, &rank)
		if err != nil {
			return nil, fmt.Errorf("scan notice hit: %w", err)
		}
		hits = append(hits, entity.NoticeHit{Notice: n, Rank: rank})
	}
	return hits, rows.Err()
}

func (r *NoticeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return nil
}

// ── Historial del asistente ──────────────────────────────────────────────────

// ChatMessageRepo implementación de ChatMessageRepository sobre PostgreSQL.
type ChatMessageRepo struct {
	q Querier
}

// NewChatMessageRepository construye el adaptador.
func NewChatMessageRepository(q Querier) *ChatMessageRepo {
	return &ChatMessageRepo{q: q}
}

func (r *ChatMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO chat_messages (id, user_id, role, content, sources, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.Role, m.Content, keywordsOrEmpty(m.Sources), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// ListByUser devuelve los últimos limit mensajes en orden cronológico.
func (r *ChatMessageRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, sources, created_at FROM (
			SELECT id, user_id, role, content, sources, created_at
			FROM chat_messages WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) last ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChatMessage
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.Sources, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *ChatMessageRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	return nil
}
