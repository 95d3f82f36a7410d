package venue

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureVenues() []Venue {
	return []Venue{
		{Rank: 3, Name: "Cellar", Coordinates: "https://maps/c", Address: "ซอย 3", OpeningHours: "18:00-24:00", Contact: "03", Website: "c.example", HasParking: Yes, OpenLate: No},
		{Rank: 1, Name: "Attic", Coordinates: "https://maps/a", Address: "ซอย 1", OpeningHours: "18:00-02:00", Contact: "01", Website: "a.example", HasParking: Yes, OpenLate: Yes},
		{Rank: 4, Name: "Deck", Coordinates: "https://maps/d", Address: "ซอย 4", OpeningHours: "ไม่มี", Contact: "04", Website: "d.example", HasParking: Yes, OpenLate: Unknown},
		{Rank: 2, Name: "Balcony", Coordinates: "https://maps/b", Address: "ซอย 2", OpeningHours: "17:00-01:00", Contact: "02", Website: "b.example", HasParking: No, OpenLate: Yes},
	}
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		name, _ := r.Get(ColName)
		out = append(out, name)
	}
	return out
}

func keys(r Record) []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Key)
	}
	return out
}

func TestParseTriState(t *testing.T) {
	assert.Equal(t, Yes, ParseTriState("ใช่"))
	assert.Equal(t, No, ParseTriState(" ไม่ใช่ "))
	assert.Equal(t, Unknown, ParseTriState("ไม่ทราบ"))
	assert.Equal(t, Unknown, ParseTriState(""))
	assert.Equal(t, "ใช่", Yes.String())
	assert.Equal(t, "ไม่ทราบ", Unknown.String())
}

func TestFilter(t *testing.T) {
	repo := NewRepository(fixtureVenues())

	tests := []struct {
		name      string
		late      TriState
		parking   TriState
		contact   TriState
		wantNames []string
		wantKeys  []string
	}{
		{
			name: "late and parking, no contact", late: Yes, parking: Yes, contact: No,
			wantNames: []string{"Attic"},
			wantKeys:  []string{ColName, ColCoordinates, ColAddress, ColOpeningHours},
		},
		{
			name: "parking only with contact", late: Unknown, parking: Yes, contact: Yes,
			wantNames: []string{"Attic", "Cellar", "Deck"},
			wantKeys:  []string{ColName, ColCoordinates, ColAddress, ColOpeningHours, ColContact, ColWebsite},
		},
		{
			name: "late, no parking", late: Yes, parking: No, contact: Unknown,
			wantNames: []string{"Balcony"},
			wantKeys:  []string{ColName, ColCoordinates, ColAddress, ColOpeningHours, ColContact, ColWebsite},
		},
		{
			name: "no restriction", late: Unknown, parking: Unknown, contact: Unknown,
			wantNames: []string{"Attic", "Balcony", "Cellar", "Deck"},
			wantKeys:  []string{ColName, ColCoordinates, ColAddress, ColOpeningHours, ColContact, ColWebsite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Filter(tt.late, tt.parking, tt.contact)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, names(got))
			for _, rec := range got {
				assert.Equal(t, tt.wantKeys, keys(rec))
			}
		})
	}
}

func TestFilterNoMatch(t *testing.T) {
	repo := NewRepository(fixtureVenues())

	got, err := repo.Filter(No, No, Yes)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListAll(t *testing.T) {
	repo := NewRepository(fixtureVenues())

	first, err := repo.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Attic", "Balcony", "Cellar", "Deck"}, names(first))
	for _, rec := range first {
		assert.Equal(t, []string{ColName}, keys(rec))
	}

	second, err := repo.ListAll()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTopN(t *testing.T) {
	repo := NewRepository(fixtureVenues())

	got, err := repo.TopN(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Attic", "Balcony"}, names(got))
	rank, _ := got[1].Get(ColRank)
	assert.Equal(t, "2", rank)

	for _, n := range []int{0, -1, 99} {
		got, err = repo.TopN(n)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	}
}

func TestDetailAll(t *testing.T) {
	repo := NewRepository(fixtureVenues())

	got, err := repo.DetailAll()
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{
		ColRank, ColName, ColCoordinates, ColAddress, ColOpeningHours,
		ColContact, ColWebsite, ColOpenLate, ColHasParking,
	}, keys(got[0]))
	late, _ := got[3].Get(ColOpenLate)
	assert.Equal(t, LabelUnknown, late)
}

func TestEmptyRepository(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.Filter(Yes, Yes, Yes)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = repo.ListAll()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = repo.TopN(5)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = repo.DetailAll()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRepositoryDoesNotShareInput(t *testing.T) {
	in := fixtureVenues()
	repo := NewRepository(in)
	in[0].Name = "changed"

	got, err := repo.ListAll()
	require.NoError(t, err)
	assert.NotContains(t, names(got), "changed")
}

const sheet = "\ufeffอันดับ,ชื่อร้าน,พิกัด,ที่อยู่,เวลาทำการ,ช่องทางติดต่อ,ที่จอดรถ,เว็บไซต์,เปิดหลังเที่ยงคืน,มีที่จอดรถ\n" +
	"2,Balcony,https://maps/b,ซอย 2,17:00-01:00,02,ไม่มีที่จอด,b.example,ใช่,ไม่ใช่\n" +
	"1,Attic,https://maps/a,ซอย 1,18:00-02:00,01,มีที่จอด,a.example,ใช่,ใช่\n"

func TestLoadCSV(t *testing.T) {
	venues, err := LoadCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, venues, 2)

	assert.Equal(t, Venue{
		Rank: 2, Name: "Balcony", Coordinates: "https://maps/b", Address: "ซอย 2",
		OpeningHours: "17:00-01:00", Contact: "02", Website: "b.example",
		HasParking: No, OpenLate: Yes,
	}, venues[0])
	assert.Equal(t, Yes, venues[1].HasParking)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("ชื่อร้าน\nAttic\n"))
	assert.ErrorContains(t, err, "missing column")

	_, err = LoadCSV(strings.NewReader("อันดับ,ชื่อร้าน\nfirst,Attic\n"))
	assert.ErrorContains(t, err, "line 2")

	venues, err := LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, venues)

	_, err = LoadCSVFile("does-not-exist.csv")
	assert.Error(t, err)
}

func TestLoadPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sdb := sqlx.NewDb(db, "sqlmock")

	rows := sqlmock.NewRows([]string{"rank", "name", "coordinates", "address", "opening_hours", "contact", "website", "has_parking", "open_late"}).
		AddRow(1, "Attic", "https://maps/a", "ซอย 1", "18:00-02:00", "01", "a.example", "ใช่", "ใช่").
		AddRow(2, "Balcony", nil, nil, nil, nil, nil, "ไม่ใช่", nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectVenues)).WillReturnRows(rows)

	venues, err := LoadPostgres(context.Background(), sdb)
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, Yes, venues[0].OpenLate)
	assert.Equal(t, "", venues[1].Website)
	assert.Equal(t, No, venues[1].HasParking)
	assert.Equal(t, Unknown, venues[1].OpenLate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPostgresError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	queryErr := errors.New("relation \"venues\" does not exist")
	mock.ExpectQuery(regexp.QuoteMeta(selectVenues)).WillReturnError(queryErr)

	_, err = LoadPostgres(context.Background(), sqlx.NewDb(db, "sqlmock"))
	assert.ErrorIs(t, err, queryErr)
}
