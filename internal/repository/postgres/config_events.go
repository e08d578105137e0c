package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/domain"
)

const defaultEventLimit = 50

type configEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewConfigEventRepository creates a new config event repository
func NewConfigEventRepository(db *sql.DB, logger *zap.Logger) *configEventRepository {
	return &configEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *configEventRepository) Create(ctx context.Context, event *domain.ConfigEvent) error {
	query := `
		INSERT INTO config_events (id, store_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.EventData == nil {
		event.EventData = map[string]interface{}{}
	}

	data, err := json.Marshal(event.EventData)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.StoreID,
		event.EventType,
		data,
		event.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create config event", zap.Int64("store_id", event.StoreID), zap.Error(err))
		return err
	}

	return nil
}

// ListByStoreID returns the newest events of a store first
func (r *configEventRepository) ListByStoreID(ctx context.Context, storeID int64, limit int) ([]*domain.ConfigEvent, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}

	query := `
		SELECT id, store_id, event_type, event_data, created_at
		FROM config_events
		WHERE store_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, storeID, limit)
	if err != nil {
		r.logger.Error("Failed to list config events", zap.Int64("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*domain.ConfigEvent
	for rows.Next() {
		var event domain.ConfigEvent
		var data []byte

		if err := rows.Scan(
			&event.ID,
			&event.StoreID,
			&event.EventType,
			&data,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(data) > 0 {
			if err := json.Unmarshal(data, &event.EventData); err != nil {
				r.logger.Warn("Skipping unreadable event data", zap.String("event_id", event.ID.String()), zap.Error(err))
			}
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}
