package historytable

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/thirukguru/aws-netcfg/service/storage"
)

func TestRenderDownloads(t *testing.T) {
	var buf bytes.Buffer
	RenderDownloads(&buf, []storage.DownloadSummary{{
		DownloadID:     3,
		AccountID:      "111111111111",
		DataFile:       "net.json",
		RegionCount:    17,
		TotalResources: 420,
		StartedAt:      time.Now(),
		DurationMS:     2500,
	}})

	out := buf.String()
	for _, want := range []string{"111111111111", "net.json", "420", "2.5s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderDownloadsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderDownloads(&buf, nil)
	if !strings.Contains(buf.String(), "No downloads recorded") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderDownloadDetail(t *testing.T) {
	var buf bytes.Buffer
	RenderDownloadDetail(&buf, &storage.DownloadDetail{
		DownloadSummary: storage.DownloadSummary{DownloadID: 1, RunUUID: "run-1", AccountID: "111111111111", TotalResources: 3},
		Regions:         []string{"us-east-1"},
		ResourceCounts:  map[string]int{"vpcs": 1, "subnets": 2},
	})

	out := buf.String()
	if strings.Index(out, "subnets") > strings.Index(out, "vpcs") {
		t.Fatalf("expected resource kinds sorted:\n%s", out)
	}
	if !strings.Contains(out, "run-1") || !strings.Contains(out, "us-east-1") {
		t.Fatalf("missing header details:\n%s", out)
	}
}
