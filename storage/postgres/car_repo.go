package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func (r *carRepo) Create(ctx context.Context, req *models.CreateCar) (*models.Car, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, query, req.Model, req.ManufacturerID).Scan(&id); err != nil {
			return err
		}
		return setDrivers(ctx, tx, id, req.DriverIDs)
	})
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err), logger.String("model", req.Model))
		return nil, translate(err)
	}
	return r.GetByID(ctx, id)
}

func (r *carRepo) Update(ctx context.Context, req *models.UpdateCar) (*models.Car, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`,
			req.Model, req.ManufacturerID, req.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1`, req.ID); err != nil {
			return err
		}
		return setDrivers(ctx, tx, req.ID, req.DriverIDs)
	})
	if err != nil {
		err = translate(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update car", logger.Error(err), logger.Int64("id", req.ID))
		}
		return nil, err
	}
	return r.GetByID(ctx, req.ID)
}

func setDrivers(ctx context.Context, tx pgx.Tx, carID int64, driverIDs []int64) error {
	if len(driverIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO car_drivers (car_id, driver_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	_, err := tx.Exec(ctx, query, carID, driverIDs)
	return err
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	var c models.Car
	query := `
		SELECT c.id, c.model, m.id, m.name, m.country
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Model, &c.Manufacturer.ID, &c.Manufacturer.Name, &c.Manufacturer.Country)
	if err != nil {
		return nil, translate(err)
	}
	c.ManufacturerID = c.Manufacturer.ID

	rows, err := r.db.Query(ctx, `
		SELECT `+driverColumns+`
		FROM car_drivers cd
		JOIN drivers d ON d.id = cd.driver_id
		WHERE cd.car_id = $1
		ORDER BY d.username, d.id
	`, id)
	if err != nil {
		r.log.Error("failed to get car drivers", logger.Error(err), logger.Int64("id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		c.Drivers = append(c.Drivers, d)
	}
	c.DriverCount = len(c.Drivers)
	return &c, rows.Err()
}

func (r *carRepo) GetList(ctx context.Context, req models.ListRequest) (*models.CarList, error) {
	pattern := containsPattern(req.Search)
	resp := &models.CarList{}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars WHERE model ILIKE $1`, pattern).Scan(&resp.Count)
	if err != nil {
		r.log.Error("failed to count cars", logger.Error(err))
		return nil, err
	}

	query := `
		SELECT c.id, c.model, m.id, m.name, m.country, COUNT(cd.driver_id)
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		LEFT JOIN car_drivers cd ON cd.car_id = c.id
		WHERE c.model ILIKE $1
		GROUP BY c.id, m.id
		ORDER BY c.model, c.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Manufacturer.ID, &c.Manufacturer.Name, &c.Manufacturer.Country, &c.DriverCount); err != nil {
			return nil, err
		}
		c.ManufacturerID = c.Manufacturer.ID
		resp.Cars = append(resp.Cars, &c)
	}
	return resp, rows.Err()
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete car", logger.Error(err), logger.Int64("id", id))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM cars").Scan(&count)
	return count, err
}

func (r *carRepo) AddDriver(ctx context.Context, carID, driverID int64) error {
	query := `INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, query, carID, driverID)
	return translate(err)
}

func (r *carRepo) RemoveDriver(ctx context.Context, carID, driverID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`, carID, driverID)
	return err
}
