package ip2loc_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack"

	"github.com/proipinfo/ip2loc"
)

func TestExport_JSONLines(t *testing.T) {
	db := openFixture(t, true)
	want := collect(t, db)

	var buf bytes.Buffer
	n, err := ip2loc.Export(context.Background(), db, &buf, ip2loc.FormatJSONLines)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	var got []*ip2loc.Record
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec ip2loc.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		got = append(got, &rec)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, want, got)
}

func TestExport_Msgpack(t *testing.T) {
	db := openFixture(t, true)
	want := collect(t, db)

	var buf bytes.Buffer
	n, err := ip2loc.Export(context.Background(), db, &buf, ip2loc.FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	dec := msgpack.NewDecoder(&buf)
	var got []*ip2loc.Record
	for {
		var rec ip2loc.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, &rec)
	}
	assert.Equal(t, want, got)
}

func TestExport_OmitsAbsentFields(t *testing.T) {
	db, err := ip2loc.New(fixtureBuilder(1, false).MustBytes())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = ip2loc.Export(context.Background(), db, &buf, ip2loc.FormatJSONLines)
	require.NoError(t, err)

	line, err := bufio.NewReader(&buf).ReadBytes('\n')
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m))
	assert.Equal(t, map[string]any{
		"ip":            "1.0.0.0",
		"country_short": "AU",
		"country_long":  "Australia",
	}, m)
}

func TestExport_Canceled(t *testing.T) {
	db := openFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := ip2loc.Export(ctx, db, io.Discard, ip2loc.FormatMsgpack)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestParseFormat(t *testing.T) {
	f, err := ip2loc.ParseFormat("msgpack")
	require.NoError(t, err)
	assert.Equal(t, ip2loc.FormatMsgpack, f)
	assert.Equal(t, "msgpack", f.String())

	f, err = ip2loc.ParseFormat("jsonl")
	require.NoError(t, err)
	assert.Equal(t, ip2loc.FormatJSONLines, f)

	_, err = ip2loc.ParseFormat("csv")
	assert.Error(t, err)

	_, err = ip2loc.NewExporter(io.Discard, ip2loc.Format(9))
	assert.Error(t, err)
}
