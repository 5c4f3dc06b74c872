package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
  - id: topic
    type: SNS
    sns:
      topic_arn: " arn:aws:sns:us-east-1:1:stars "
      region: us-east-1
      access_key_id: AKIA
      secret_access_key: secret
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "http2" || enabled[1].ID != "topic" {
		t.Fatalf("expected http2 and topic enabled, got %#v", enabled)
	}

	topic, ok := reg.ByID("topic")
	if !ok {
		t.Fatalf("topic publisher not indexed")
	}
	if topic.Type != TypeSNS || topic.SNS.TopicARN != "arn:aws:sns:us-east-1:1:stars" {
		t.Fatalf("sns config not sanitized: %#v", topic.SNS)
	}
	if topic.SNS.AccessKeyID != "AKIA" {
		t.Fatalf("inline credentials not decoded: %#v", topic.SNS.AWSCredentials)
	}
	if reg.All()[0].HTTP.Method != httpDefaultMethod {
		t.Fatalf("expected default http method")
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.json")
	raw := `{"publishers":[{"id":"gcp","type":"pubsub","pubsub":{"project_id":"p","topic":"stars"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if cfg, ok := reg.ByID("gcp"); !ok || cfg.PubSub.Topic != "stars" {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := `
publishers:
  - id: a
    type: http
    http: {url: https://example.com}
  - id: a
    type: http
    http: {url: https://example.com}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfigRejectsMissingBlocks(t *testing.T) {
	for _, cfg := range []PublisherConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS},
		{ID: "t1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		{ID: "p1", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
		{ID: "k1", Type: "kafka"},
	} {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}
}
