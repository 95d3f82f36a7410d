package venue

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// LoadCSVFile reads the scraped venue sheet.
func LoadCSVFile(path string) ([]Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open venue file: %w", err)
	}
	defer f.Close()

	return LoadCSV(f)
}

// LoadCSV parses venues from CSV with a header row of Thai column labels.
// Rank and name are required; other columns may be missing.
func LoadCSV(r io.Reader) ([]Venue, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, required := range []string{ColRank, ColName} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var venues []Venue
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rank, err := strconv.Atoi(get(ColRank))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rank %q", line, get(ColRank))
		}

		venues = append(venues, Venue{
			Rank:         rank,
			Name:         get(ColName),
			Coordinates:  get(ColCoordinates),
			Address:      get(ColAddress),
			OpeningHours: get(ColOpeningHours),
			Contact:      get(ColContact),
			Website:      get(ColWebsite),
			HasParking:   ParseTriState(get(ColHasParking)),
			OpenLate:     ParseTriState(get(ColOpenLate)),
		})
	}

	return venues, nil
}

const selectVenues = `SELECT rank, name, coordinates, address, opening_hours, contact, website, has_parking, open_late
FROM venues
ORDER BY rank`

type venueRow struct {
	Rank         int            `db:"rank"`
	Name         string         `db:"name"`
	Coordinates  sql.NullString `db:"coordinates"`
	Address      sql.NullString `db:"address"`
	OpeningHours sql.NullString `db:"opening_hours"`
	Contact      sql.NullString `db:"contact"`
	Website      sql.NullString `db:"website"`
	HasParking   sql.NullString `db:"has_parking"`
	OpenLate     sql.NullString `db:"open_late"`
}

// OpenPostgres connects to the venue database.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// LoadPostgres reads the venues table. Flag columns hold the same labels as
// the CSV sheet.
func LoadPostgres(ctx context.Context, db *sqlx.DB) ([]Venue, error) {
	var rows []venueRow
	if err := db.SelectContext(ctx, &rows, selectVenues); err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}

	venues := make([]Venue, 0, len(rows))
	for _, row := range rows {
		venues = append(venues, Venue{
			Rank:         row.Rank,
			Name:         row.Name,
			Coordinates:  row.Coordinates.String,
			Address:      row.Address.String,
			OpeningHours: row.OpeningHours.String,
			Contact:      row.Contact.String,
			Website:      row.Website.String,
			HasParking:   ParseTriState(row.HasParking.String),
			OpenLate:     ParseTriState(row.OpenLate.String),
		})
	}
	return venues, nil
}
