package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/common"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"
)

const videosTable = "videos"

// VideoStore reads and writes rows of the videos table. Every call is scoped
// to s.UserID.
type VideoStore interface {
	// List returns the user's videos, newest first. limit <= 0 means all.
	List(ctx context.Context, s models.Session, limit int) ([]models.Video, error)
	// Search matches text case-insensitively against title, target_lang and
	// translation_mode. Blank text yields no results and no request.
	Search(ctx context.Context, s models.Session, text string) ([]models.Video, error)
	Get(ctx context.Context, s models.Session, id string) (*models.Video, error)
	Insert(ctx context.Context, s models.Session, v models.NewVideo) (*models.Video, error)
	Update(ctx context.Context, s models.Session, id string, p models.VideoPatch) (*models.Video, error)
	Delete(ctx context.Context, s models.Session, id string) error
}

// PostgrestVideos implements VideoStore over the hosted PostgREST endpoint.
type PostgrestVideos struct {
	restURL string
	apiKey  string
	log     logging.Logger
}

func NewPostgrestVideos(projectURL, anonKey string, log logging.Logger) *PostgrestVideos {
	return &PostgrestVideos{
		restURL: strings.TrimRight(projectURL, "/") + "/rest/v1",
		apiKey:  anonKey,
		log:     log,
	}
}

// table returns a query builder authorised as the session user. The
// underlying client keeps headers in shared state, so one is built per call.
func (p *PostgrestVideos) table(s models.Session) *postgrest.QueryBuilder {
	c := postgrest.NewClient(p.restURL, "public", map[string]string{common.APIKeyHeaderName: p.apiKey})
	return c.SetAuthToken(s.AccessToken).From(videosTable)
}

func (p *PostgrestVideos) List(ctx context.Context, s models.Session, limit int) ([]models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := p.table(s).Select("*", "", false).
		Eq("user_id", s.UserID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var rows []models.Video
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, mapError(err)
	}
	return p.accept(ctx, s, rows), nil
}

func (p *PostgrestVideos) Search(ctx context.Context, s models.Session, text string) ([]models.Video, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.Video{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := ilikePattern(text)
	filter := fmt.Sprintf("title.ilike.%[1]s,target_lang.ilike.%[1]s,translation_mode.ilike.%[1]s", pattern)

	var rows []models.Video
	_, err := p.table(s).Select("*", "", false).
		Eq("user_id", s.UserID).
		Or(filter, "").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, mapError(err)
	}
	return p.accept(ctx, s, rows), nil
}

func (p *PostgrestVideos) Get(ctx context.Context, s models.Session, id string) (*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Video
	_, err := p.table(s).Select("*", "", false).
		Eq("id", id).
		Eq("user_id", s.UserID).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, mapError(err)
	}
	return p.single(s, rows)
}

func (p *PostgrestVideos) Insert(ctx context.Context, s models.Session, v models.NewVideo) (*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.UserID = s.UserID

	var rows []models.Video
	if _, err := p.table(s).Insert(v, false, "", "representation", "").ExecuteTo(&rows); err != nil {
		return nil, mapError(err)
	}
	return p.single(s, rows)
}

func (p *PostgrestVideos) Update(ctx context.Context, s models.Session, id string, patch models.VideoPatch) (*models.Video, error) {
	if patch.Empty() {
		return p.Get(ctx, s, id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.Video
	_, err := p.table(s).Update(patch, "representation", "").
		Eq("id", id).
		Eq("user_id", s.UserID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, mapError(err)
	}
	return p.single(s, rows)
}

func (p *PostgrestVideos) Delete(ctx context.Context, s models.Session, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var rows []models.Video
	_, err := p.table(s).Delete("representation", "").
		Eq("id", id).
		Eq("user_id", s.UserID).
		ExecuteTo(&rows)
	if err != nil {
		return mapError(err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// accept validates rows and drops those that are malformed or belong to
// another user.
func (p *PostgrestVideos) accept(ctx context.Context, s models.Session, rows []models.Video) []models.Video {
	out := make([]models.Video, 0, len(rows))
	for i := range rows {
		v := rows[i]
		if err := v.Validate(); err != nil {
			p.log.Warn(ctx, "dropping malformed video row", "id", v.ID, "error", err)
			continue
		}
		if v.UserID != s.UserID {
			p.log.Warn(ctx, "dropping foreign video row", "id", v.ID)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (p *PostgrestVideos) single(s models.Session, rows []models.Video) (*models.Video, error) {
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	v := rows[0]
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if v.UserID != s.UserID {
		return nil, ErrNotFound
	}
	return &v, nil
}

// likeEscaper makes LIKE wildcards in user input match themselves.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// quoteEscaper keeps the or= filter syntax from reading into the value.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ilikePattern builds a quoted substring pattern for text taken literally.
func ilikePattern(text string) string {
	return `"*` + quoteEscaper.Replace(likeEscaper.Replace(text)) + `*"`
}
