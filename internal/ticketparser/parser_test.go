package ticketparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Another0Noob/stagelog/internal/ticket"
)

const ticketsCSV = "\ufeffDate,Time,Performance Name,Theater,Ticket_Price,Rating,Casting,isChild\n" +
	"2024-05-01,19:30:00,지킬앤하이드 [광주],광주문화예술회관 (대극장),\"55,000\",4.5,\"홍광호, 신성록\",N\n" +
	"2024-05-02,,,,,,,\n" +
	"2024-05-03,14:00:00,레미제라블,블루스퀘어,,,,Y\n"

func TestParseCSV(t *testing.T) {
	got, err := ParseFromBytes([]byte(ticketsCSV), "tickets.CSV")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ticket.Ticket{
		Date:            "2024-05-01",
		Time:            "19:30:00",
		PerformanceName: "지킬앤하이드 [광주]",
		Theater:         "광주문화예술회관 (대극장)",
		TicketPrice:     55000,
		Rating:          4.5,
		Casting:         []string{"홍광호", "신성록"},
	}, got[0])

	assert.Equal(t, "레미제라블", got[1].PerformanceName)
	assert.True(t, got[1].IsChild)
}

func TestParseCSVAliases(t *testing.T) {
	data := "공연명,극장,price\n드림씨어터 공연,드림씨어터 [부산],33000원\n"
	got, err := ParseFromBytes([]byte(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "드림씨어터 [부산]", got[0].Theater)
	assert.Equal(t, 33000, got[0].TicketPrice)
}

func TestParseCSVDefaultColumns(t *testing.T) {
	data := "a,b,c,d\n2024-01-01,20:00:00,레미제라블,블루스퀘어\n"
	got, err := ParseFromBytes([]byte(data), "export.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "레미제라블", got[0].PerformanceName)
	assert.Equal(t, "블루스퀘어", got[0].Theater)
}

func TestParseCSVBadNumber(t *testing.T) {
	data := "performanceName,ticketPrice\nX,abc\n"
	_, err := ParseFromBytes([]byte(data), "export.csv")
	assert.ErrorContains(t, err, "line 2: ticketPrice")
}

func TestParseJSON(t *testing.T) {
	for name, data := range map[string]string{
		"array":    `[{"id":"1","performanceName":"레미제라블","theater":"블루스퀘어","ticketPrice":88000}]`,
		"envelope": `{"data":[{"id":"1","performanceName":"레미제라블","theater":"블루스퀘어","ticketPrice":88000}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFromBytes([]byte(data), "tickets.json")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "1", got[0].ID)
			assert.Equal(t, 88000, got[0].TicketPrice)
		})
	}

	got, err := ParseFromBytes([]byte("  "), "tickets.json")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseFromBytes([]byte("{"), "tickets.json")
	assert.Error(t, err)
}

func TestParseUnknownExtension(t *testing.T) {
	_, err := ParseFromBytes(nil, "tickets.xml")
	assert.ErrorContains(t, err, "unknown file format")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte(ticketsCSV), 0o600))

	got, err := Parse(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
