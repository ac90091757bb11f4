package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"TrailGuard-App/internal/domain/model"
)

const overpassSampleResponse = `{
  "elements": [
    {
      "type": "way",
      "id": 42,
      "tags": {"name": "Eno Trail", "highway": "path", "foot": "yes"},
      "geometry": [
        {"lat": 36.001, "lon": -79.001},
        {"lat": 36.002, "lon": -79.002}
      ]
    },
    {
      "type": "relation",
      "id": 7,
      "tags": {"name": "Mountains-to-Sea Trail", "route": "hiking"},
      "geometry": [
        {"lat": 36.100, "lon": -79.100}
      ]
    }
  ]
}`

func TestOverpassProvider_FetchTrailElements(t *testing.T) {
	var receivedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.Query().Get("data")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(overpassSampleResponse))
	}))
	defer server.Close()

	provider := NewOverpassProviderWithEndpoint(server.URL)
	bbox := model.BoundingBox{MinLat: 35.8, MinLng: -79.4, MaxLat: 36.4, MaxLng: -78.6}

	elements, err := provider.FetchTrailElements(context.Background(), bbox)
	assert.NoError(t, err)

	if len(elements) != 2 {
		t.Fatalf("エレメント数が一致しません: %d", len(elements))
	}
	if elements[0].Tags.Name != "Eno Trail" {
		t.Errorf("nameタグが一致しません: %s", elements[0].Tags.Name)
	}
	if elements[0].Geometry[0].Lat != 36.001 || elements[0].Geometry[0].Lon != -79.001 {
		t.Errorf("ジオメトリが一致しません: %+v", elements[0].Geometry[0])
	}
	if elements[1].Type != "relation" || elements[1].ID != 7 {
		t.Errorf("2件目のエレメントが一致しません: %s/%d", elements[1].Type, elements[1].ID)
	}

	t.Run("クエリにbboxと対象タグが含まれる", func(t *testing.T) {
		// Overpassのbboxは (south,west,north,east) の順
		if !strings.Contains(receivedQuery, "(35.8,-79.4,36.4,-78.6)") {
			t.Errorf("bboxの順序が想定と異なります: %s", receivedQuery)
		}
		if !strings.Contains(receivedQuery, `way["highway"~"path|footway"]["foot"="yes"]`) {
			t.Errorf("footway条件が含まれていません: %s", receivedQuery)
		}
		if !strings.Contains(receivedQuery, `relation["route"="hiking"]`) {
			t.Errorf("hikingリレーション条件が含まれていません: %s", receivedQuery)
		}
	})
}

func TestOverpassProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOverpassProviderWithEndpoint(server.URL)
	_, err := provider.FetchTrailElements(context.Background(), model.DefaultBoundingBox)
	if err == nil {
		t.Fatal("エラーステータスがエラーになっていません")
	}
}

func TestOverpassProvider_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	provider := NewOverpassProviderWithEndpoint(server.URL)
	_, err := provider.FetchTrailElements(context.Background(), model.DefaultBoundingBox)
	if err == nil {
		t.Fatal("不正なJSONがエラーになっていません")
	}
}
