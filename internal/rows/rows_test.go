package rows

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/gravemap/internal/db"
	"github.com/ziadkadry99/gravemap/internal/records"
)

const sampleCSV = `kwatera,rzad,miejsce,lat,lng,imie,nazwisko,data_urodzenia,data_smierci
A,II,3,49.4964,19.8593,Jan,Kowalski,1920-01-01,1990-05-05
A,II,3,49.4964,19.8593,Anna,Kowalska,,1995-06-06

B,,,49.4965,19.8594,"Piotr, ks.",Nowak,,
`

func TestParseCSV(t *testing.T) {
	got, err := ParseCSV(strings.NewReader(sampleCSV), Columns{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, records.RawRow{
		Section: "A", Row: "II", Spot: "3",
		Latitude: "49.4964", Longitude: "19.8593",
		FirstName: "Jan", LastName: "Kowalski",
		BirthDate: "1920-01-01", DeathDate: "1990-05-05",
	}, got[0])
	assert.Equal(t, "", got[1].BirthDate)
	assert.Equal(t, "Piotr, ks.", got[2].FirstName)
	assert.Equal(t, "", got[2].Row)
}

func TestParseCSVHeaderOrderAndCase(t *testing.T) {
	in := "Nazwisko,IMIE,lng,lat,kwatera\nNowak,Jan,19.1,49.1,C\n"
	got, err := ParseCSV(strings.NewReader(in), Columns{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Nowak", got[0].LastName)
	assert.Equal(t, "Jan", got[0].FirstName)
	assert.Equal(t, "49.1", got[0].Latitude)
	assert.Equal(t, "19.1", got[0].Longitude)
	assert.Equal(t, "", got[0].Spot)
}

func TestParseCSVStripsBOM(t *testing.T) {
	in := "\uFEFFkwatera,rzad,miejsce,lat,lng,imie,nazwisko\nA,II,3,49.4964,19.8593,Jan,Kowalski\n"
	got, err := ParseCSV(strings.NewReader(in), Columns{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Section)
	assert.Equal(t, "II", got[0].Row)
	assert.Equal(t, "Kowalski", got[0].LastName)
}

func TestParseCSVCustomColumns(t *testing.T) {
	in := "section,latitude,longitude,surname\nD,1,2,Wiśniewski\n"
	cols := Columns{Section: "section", Latitude: "latitude", Longitude: "longitude", LastName: "surname"}
	got, err := ParseCSV(strings.NewReader(in), cols)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "D", got[0].Section)
	assert.Equal(t, "Wiśniewski", got[0].LastName)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), Columns{})
	assert.ErrorIs(t, err, ErrNoHeader)

	got, err := ParseCSV(strings.NewReader("kwatera,lat,lng\n"), Columns{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVSourceHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewCSVSource(srv.URL, Columns{})
	got, err := src.Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "csv:"+srv.URL, src.Name())
}

func TestCSVSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewCSVSource(srv.URL, Columns{}).Rows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCSVSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dane.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	got, err := NewCSVSource(path, Columns{}).Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), Columns{}).Rows(context.Background())
	assert.Error(t, err)

	_, err = NewCSVSource("", Columns{}).Rows(context.Background())
	assert.Error(t, err)
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	good := &Static{Label: "good", Data: []records.RawRow{{Section: "A"}}}
	bad := &Static{Label: "bad", Err: errors.New("offline")}

	got, err := (&Fallback{Primary: bad, Secondary: good}).Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = (&Fallback{Primary: bad, Secondary: bad}).Rows(ctx)
	assert.Error(t, err)

	_, err = (&Fallback{Primary: bad}).Rows(ctx)
	assert.Error(t, err)
	assert.Equal(t, "bad", (&Fallback{Primary: bad}).Name())
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	d, err := db.OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	ctx := context.Background()
	s := NewSnapshotStore(d)

	_, err = s.Rows(ctx)
	assert.True(t, IsNoSnapshot(err))

	in, err := ParseCSV(strings.NewReader(sampleCSV), Columns{})
	require.NoError(t, err)

	var calls int
	imp, err := s.Save(ctx, "test", in, func(done int) { calls = done })
	require.NoError(t, err)
	assert.Equal(t, 3, imp.RowCount)
	assert.Equal(t, 3, calls)

	got, err := s.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, imp.ID, latest.ID)
	assert.Equal(t, "test", latest.Source)
}

func TestSnapshotStoreReplaces(t *testing.T) {
	d, err := db.OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	ctx := context.Background()
	s := NewSnapshotStore(d)

	_, err = s.Save(ctx, "first", []records.RawRow{{Section: "A"}, {Section: "B"}}, nil)
	require.NoError(t, err)
	_, err = s.Save(ctx, "second", []records.RawRow{{Section: "C"}}, nil)
	require.NoError(t, err)

	got, err := s.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Section)
}
