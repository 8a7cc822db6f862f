package minio

import (
	"strings"

	"report-srv/config"
)

// validateConfig returns the endpoint to dial, with the default port added
// when cfg.Endpoint has none. cfg is not modified.
func validateConfig(cfg *config.MinIOConfig) (string, error) {
	switch {
	case cfg == nil:
		return "", invalid("config", "config is required")
	case cfg.Endpoint == "":
		return "", invalid("config", "endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return "", invalid("config", "access key and secret key are required")
	case cfg.Bucket == "":
		return "", invalid("config", "bucket is required")
	}

	if strings.Contains(cfg.Endpoint, ":") {
		return cfg.Endpoint, nil
	}
	return cfg.Endpoint + defaultPort, nil
}

func validateRef(bucket, key string) error {
	switch {
	case bucket == "":
		return invalid("validate", "bucket is required")
	case key == "":
		return invalid("validate", "key is required")
	case strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/"):
		return invalid("validate", "key cannot start or end with '/'")
	case strings.Contains(key, "\\"):
		return invalid("validate", "key cannot contain backslashes")
	}
	return nil
}

func validatePut(in PutObjectInput) error {
	if err := validateRef(in.Bucket, in.Key); err != nil {
		return err
	}
	switch {
	case in.Body == nil:
		return invalid("put_object", "body is required")
	case in.Size < 0 || in.Size > MaxObjectSize:
		return invalid("put_object", "size out of range")
	case in.ContentType == "":
		return invalid("put_object", "content type is required")
	}
	return nil
}
