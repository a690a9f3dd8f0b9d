package data

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-sync/internal/model"
)

func tariffRange(startDay, endDay int) model.DateRange {
	return model.DateRange{
		Start: time.Date(2024, 1, startDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, endDay, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetTariffs(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"startTimestamp": q.Get("startTimestamp"),
			"endTimestamp":   q.Get("endTimestamp"),
			"grouping":       q.Get("grouping"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"Timestamp":"2024-01-06T00:00:00.000Z","SupplierId":14,"TariffUsage":0.21,"TariffReturn":0.05},
			{"Timestamp":"2024-01-06T01:00:00.000Z","SupplierId":14,"TariffUsage":0.2,"TariffReturn":null}
		]`))
	}))
	defer srv.Close()

	c := NewEasyEnergyClient(srv.URL, 5*time.Second)
	raw, err := c.GetTariffs(tariffRange(6, 7))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-06T00:00:00.000Z", gotQuery["startTimestamp"])
	assert.Equal(t, "2024-01-07T23:00:00.000Z", gotQuery["endTimestamp"])
	assert.Equal(t, `""`, gotQuery["grouping"])

	require.Len(t, raw, 2)
	assert.Equal(t, "2024-01-06T00:00:00.000Z", raw[0].Timestamp)
	require.NotNil(t, raw[0].TariffUsage)
	assert.InDelta(t, 0.21, *raw[0].TariffUsage, 1e-9)
	assert.Nil(t, raw[1].TariffReturn)
}

func TestGetTariffs_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewEasyEnergyClient(srv.URL, 5*time.Second)
	_, err := c.GetTariffs(tariffRange(6, 7))
	require.Error(t, err)

	var apiErr *EasyEnergyError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestGetTariffs_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"object"}`))
	}))
	defer srv.Close()

	c := NewEasyEnergyClient(srv.URL, 5*time.Second)
	_, err := c.GetTariffs(tariffRange(6, 7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode tariff response")
}

func TestGetTariffs_ReversedRange(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewEasyEnergyClient(srv.URL, 5*time.Second)
	_, err := c.GetTariffs(tariffRange(7, 6))
	require.Error(t, err)
	assert.False(t, called)
}

func TestGetTariffs_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewEasyEnergyClient(srv.URL, time.Second)
	_, err := c.GetTariffs(tariffRange(6, 7))
	require.Error(t, err)

	var apiErr *EasyEnergyError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "TRANSPORT_ERROR", apiErr.Code)
}

func TestNewEasyEnergyClient_Defaults(t *testing.T) {
	c := NewEasyEnergyClient("", 0)
	assert.Contains(t, c.BaseURL, "easyenergy.com")
	assert.Equal(t, 30*time.Second, c.Client.Timeout)
}
