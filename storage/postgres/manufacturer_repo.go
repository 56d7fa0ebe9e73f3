package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type manufacturerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewManufacturerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, req *models.CreateManufacturer) (*models.Manufacturer, error) {
	var m models.Manufacturer
	query := `INSERT INTO manufacturers (name, country) VALUES ($1, $2) RETURNING id, name, country`
	err := r.db.QueryRow(ctx, query, req.Name, req.Country).Scan(&m.ID, &m.Name, &m.Country)
	if err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, translate(err)
	}
	return &m, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, req *models.UpdateManufacturer) (*models.Manufacturer, error) {
	var m models.Manufacturer
	query := `UPDATE manufacturers SET name = $1, country = $2 WHERE id = $3 RETURNING id, name, country`
	err := r.db.QueryRow(ctx, query, req.Name, req.Country, req.ID).Scan(&m.ID, &m.Name, &m.Country)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update manufacturer", logger.Error(err), logger.Int64("id", req.ID))
		}
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	err := r.db.QueryRow(ctx, `SELECT id, name, country FROM manufacturers WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Country)
	if err != nil {
		return nil, translate(err)
	}

	query := `
		SELECT c.id, c.model, COUNT(cd.driver_id)
		FROM cars c
		LEFT JOIN car_drivers cd ON cd.car_id = c.id
		WHERE c.manufacturer_id = $1
		GROUP BY c.id
		ORDER BY c.model, c.id
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("failed to get manufacturer cars", logger.Error(err), logger.Int64("id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c := models.Car{ManufacturerID: m.ID, Manufacturer: models.Manufacturer{ID: m.ID, Name: m.Name, Country: m.Country}}
		if err := rows.Scan(&c.ID, &c.Model, &c.DriverCount); err != nil {
			return nil, err
		}
		m.Cars = append(m.Cars, &c)
	}
	return &m, rows.Err()
}

func (r *manufacturerRepo) GetList(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error) {
	pattern := containsPattern(req.Search)
	resp := &models.ManufacturerList{}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM manufacturers WHERE name ILIKE $1`, pattern).Scan(&resp.Count)
	if err != nil {
		r.log.Error("failed to count manufacturers", logger.Error(err))
		return nil, err
	}

	query := `
		SELECT id, name, country
		FROM manufacturers
		WHERE name ILIKE $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset)
	if err != nil {
		r.log.Error("failed to list manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Country); err != nil {
			return nil, err
		}
		resp.Manufacturers = append(resp.Manufacturers, &m)
	}
	return resp, rows.Err()
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Manufacturers, nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	// cars has ON DELETE CASCADE, so the manufacturer's cars go with it
	tag, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete manufacturer", logger.Error(err), logger.Int64("id", id))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM manufacturers").Scan(&count)
	return count, err
}
