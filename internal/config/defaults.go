package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "transportmarket",
}

var defaultKafka = Kafka{
	Topic:   "record-events",
	GroupID: "transportmarket-worker",
}

var defaultPush = Push{
	BaseURL: "http://localhost:9100",
	Timeout: 2 * time.Second,
}

const defaultOperationTimeout = 3 * time.Second

var defaultRetention = Retention{
	Days: 30,
	// daily at 03:30
	SweepSchedule: "30 3 * * *",
}

var defaultRateLimit = RateLimit{
	Limit:  20,
	Window: time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default event-consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultPush returns the default push gateway settings.
func DefaultPush() Push {
	return defaultPush
}

// DefaultOperationTimeout returns the default store/service operation timeout.
func DefaultOperationTimeout() time.Duration {
	return defaultOperationTimeout
}

// DefaultRetention returns the default archival retention settings.
func DefaultRetention() Retention {
	return defaultRetention
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof listener settings.
func DefaultPprof() Pprof {
	return Pprof{}
}
