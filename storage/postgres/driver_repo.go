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

const driverColumns = `d.id, d.username, d.password, d.first_name, d.last_name, d.email,
	d.license_number, d.is_staff, d.is_superuser, d.is_active, d.date_joined, d.last_login`

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func scanDriver(row pgx.Row, extra ...any) (*models.Driver, error) {
	var d models.Driver
	dest := []any{
		&d.ID, &d.Username, &d.Password, &d.FirstName, &d.LastName, &d.Email,
		&d.LicenseNumber, &d.IsStaff, &d.IsSuperuser, &d.IsActive, &d.DateJoined, &d.LastLogin,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, req *models.CreateDriver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers AS d (username, password, first_name, last_name, email, license_number, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + driverColumns
	row := r.db.QueryRow(ctx, query,
		req.Username, req.Password, req.FirstName, req.LastName, req.Email,
		req.LicenseNumber, req.IsStaff, req.IsSuperuser,
	)
	d, err := scanDriver(row)
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err), logger.String("username", req.Username))
		return nil, translate(err)
	}
	return d, nil
}

func (r *driverRepo) Update(ctx context.Context, req *models.UpdateDriver) (*models.Driver, error) {
	query := `
		UPDATE drivers AS d
		SET first_name = $1, last_name = $2, email = $3, license_number = $4, is_staff = $5, is_active = $6
		WHERE d.id = $7
		RETURNING ` + driverColumns
	row := r.db.QueryRow(ctx, query,
		req.FirstName, req.LastName, req.Email, req.LicenseNumber, req.IsStaff, req.IsActive, req.ID,
	)
	d, err := scanDriver(row)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update driver", logger.Error(err), logger.Int64("id", req.ID))
		}
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}

	query := `
		SELECT c.id, c.model, m.id, m.name, m.country
		FROM car_drivers cd
		JOIN cars c ON c.id = cd.car_id
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE cd.driver_id = $1
		ORDER BY c.model, c.id
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("failed to get driver cars", logger.Error(err), logger.Int64("id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Manufacturer.ID, &c.Manufacturer.Name, &c.Manufacturer.Country); err != nil {
			return nil, err
		}
		c.ManufacturerID = c.Manufacturer.ID
		d.Cars = append(d.Cars, &c)
	}
	d.CarCount = len(d.Cars)
	return d, rows.Err()
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.username = $1`, username))
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (r *driverRepo) GetList(ctx context.Context, req models.ListRequest) (*models.DriverList, error) {
	pattern := containsPattern(req.Search)
	resp := &models.DriverList{}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers WHERE username ILIKE $1`, pattern).Scan(&resp.Count)
	if err != nil {
		r.log.Error("failed to count drivers", logger.Error(err))
		return nil, err
	}

	query := `
		SELECT ` + driverColumns + `, COUNT(cd.car_id)
		FROM drivers d
		LEFT JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE d.username ILIKE $1
		GROUP BY d.id
		ORDER BY d.username, d.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var carCount int
		d, err := scanDriver(rows, &carCount)
		if err != nil {
			return nil, err
		}
		d.CarCount = carCount
		resp.Drivers = append(resp.Drivers, d)
	}
	return resp, rows.Err()
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Drivers, nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete driver", logger.Error(err), logger.Int64("id", id))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM drivers").Scan(&count)
	return count, err
}

func (r *driverRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM drivers WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *driverRepo) LicenseNumberExists(ctx context.Context, licenseNumber string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM drivers WHERE license_number = $1 AND id <> $2)`
	err := r.db.QueryRow(ctx, query, licenseNumber, excludeID).Scan(&exists)
	return exists, err
}

func (r *driverRepo) SetLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE drivers SET last_login = NOW() WHERE id = $1", id)
	return err
}
