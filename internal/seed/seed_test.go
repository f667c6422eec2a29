package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airgraph/internal/models"
)

type fakeAircraftRepo struct {
	created []*models.Aircraft
}

func (f *fakeAircraftRepo) Create(ctx context.Context, aircraft *models.Aircraft) error {
	f.created = append(f.created, aircraft)
	return nil
}

type fakeAirportRepo struct {
	created []*models.Airport
}

func (f *fakeAirportRepo) Create(ctx context.Context, airport *models.Airport) error {
	f.created = append(f.created, airport)
	return nil
}

func writeCSV(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAircraftCSV(t *testing.T) {
	csv := `aircraft_id,tail_number,icao24,model,operator,manufacturer
AC1001,N95040A,A1B2C3,B737-800,ExampleAir,Boeing
AC1002,N12345B,D4E5F6,A320-200,SkyLine,Airbus
`
	path := writeCSV(t, "aircraft.csv", csv)
	repo := &fakeAircraftRepo{}

	count, err := LoadAircraftCSV(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.created, 2)

	assert.Equal(t, "AC1001", repo.created[0].AircraftID)
	assert.Equal(t, "N95040A", repo.created[0].TailNumber)
	assert.Equal(t, "Boeing", repo.created[0].Manufacturer)
	assert.Equal(t, "SkyLine", repo.created[1].Operator)
}

func TestLoadAircraftCSV_GeneratesMissingIDs(t *testing.T) {
	csv := `aircraft_id,tail_number,icao24,model,operator,manufacturer
,N95040A,A1B2C3,B737-800,ExampleAir,Boeing
`
	path := writeCSV(t, "aircraft.csv", csv)
	repo := &fakeAircraftRepo{}

	count, err := LoadAircraftCSV(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotEmpty(t, repo.created[0].AircraftID)
}

func TestLoadAircraftCSV_SkipsInvalidRows(t *testing.T) {
	// Second row has no tail number, third row has too few fields.
	csv := `aircraft_id,tail_number,icao24,model,operator,manufacturer
AC1001,N95040A,A1B2C3,B737-800,ExampleAir,Boeing
AC1002,,D4E5F6,A320-200,SkyLine,Airbus
AC1003,N67890C
`
	path := writeCSV(t, "aircraft.csv", csv)
	repo := &fakeAircraftRepo{}

	count, err := LoadAircraftCSV(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadAircraftCSV_MissingFile(t *testing.T) {
	_, err := LoadAircraftCSV(context.Background(), "/nonexistent/aircraft.csv", &fakeAircraftRepo{})
	assert.Error(t, err)
}

func TestLoadAirportCSV(t *testing.T) {
	csv := `airport_id,name,iata,icao,city,country,lat,lon
AP001,John F. Kennedy International,JFK,KJFK,New York,USA,40.6413,-73.7781
AP002,Heathrow,LHR,EGLL,London,UK,51.4700,-0.4543
`
	path := writeCSV(t, "airports.csv", csv)
	repo := &fakeAirportRepo{}

	count, err := LoadAirportCSV(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.created, 2)

	jfk := repo.created[0]
	assert.Equal(t, "JFK", jfk.IATA)
	assert.Equal(t, "KJFK", jfk.ICAO)
	assert.InDelta(t, 40.6413, jfk.Lat, 0.0001)
	assert.InDelta(t, -73.7781, jfk.Lon, 0.0001)
}

func TestLoadAirportCSV_SkipsMissingIATA(t *testing.T) {
	csv := `airport_id,name,iata,icao,city,country,lat,lon
AP001,Nowhere Field,,XXXX,Nowhere,NA,0.0,0.0
`
	path := writeCSV(t, "airports.csv", csv)
	repo := &fakeAirportRepo{}

	count, err := LoadAirportCSV(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, repo.created)
}

func TestGetField_QuotedHeaders(t *testing.T) {
	csv := `'aircraft_id','tail_number','icao24','model','operator','manufacturer'
AC1001,' N95040A ',A1B2C3,B737-800,ExampleAir,Boeing
`
	path := writeCSV(t, "aircraft.csv", csv)
	repo := &fakeAircraftRepo{}

	count, err := LoadAircraftCSV(context.Background(), path, repo)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	assert.Equal(t, "N95040A", repo.created[0].TailNumber)
}
