package main

import (
	"testing"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestOpenAuditStore(t *testing.T) {
	sinkConfig := func(sink string) config.Config {
		return config.Config{Audit: config.AuditConfig{Sink: sink, Stream: "audit:log", StreamMaxLen: 1000}}
	}

	store, reader := openAuditStore(sinkConfig("memory"), nil, nil)
	assert.IsType(t, &audit.MemoryStore{}, store)
	assert.Same(t, store, reader)

	store, reader = openAuditStore(sinkConfig("redis"), nil, nil)
	assert.IsType(t, &audit.RedisStreamStore{}, store)
	assert.Nil(t, reader)

	store, reader = openAuditStore(sinkConfig("log"), nil, nil)
	assert.Nil(t, store)
	assert.Nil(t, reader)
}
