package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"schoolapi/db"
	"schoolapi/models"
)

type brokenStore struct{ db.MemoryStore }

func (*brokenStore) InsertSchool(context.Context, models.NewSchool) (int64, error) {
	return 0, errors.New("lock wait timeout")
}

func TestLoad(t *testing.T) {
	input := strings.Join([]string{
		"name;address;latitude;longitude",
		"ABCD ACADEMY;XYZ Lane, ABC City;123.456;78.901",
		"Equator School;Main Road;0;90",
		";Nameless Road;1;1",
		"Bad Coordinates;Somewhere;north;1",
		"Short Row;Only Two",
		"  Spaced School ; Side Street ; -33.5 ; 151.2 ",
	}, "\n")

	store := db.NewMemoryStore()
	res, err := load(context.Background(), store, strings.NewReader(input), ';', true, zaptest.NewLogger(t))

	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 3, res.Skipped)

	schools, _ := store.ListSchools(context.Background())
	require.Len(t, schools, 3)
	assert.Equal(t, "ABCD ACADEMY", schools[0].Name)
	assert.Equal(t, "XYZ Lane, ABC City", schools[0].Address)
	assert.Equal(t, "Spaced School", schools[2].Name)
	assert.Equal(t, "-33.5", schools[2].Latitude.String())
}

func TestLoadWithoutHeaderSkip(t *testing.T) {
	store := db.NewMemoryStore()
	res, err := load(context.Background(), store, strings.NewReader("name,address,latitude,longitude\nA,B,1,2\n"), ',', false, zaptest.NewLogger(t))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
}

func TestLoadStopsOnStoreError(t *testing.T) {
	res, err := load(context.Background(), &brokenStore{}, strings.NewReader("A,B,1,2\nC,D,3,4\n"), ',', false, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Equal(t, 0, res.Inserted)
}

func TestRootCmdRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})

	assert.Error(t, cmd.Execute())
}

func TestRootCmdRejectsLongSeparator(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--file", "schools.csv", "--comma", ";;"})
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single character")
}
