// Package config loads, normalizes, and validates viralclip settings.
//
// Settings come from an optional TOML file layered over repository
// defaults. Credentials and the embeddings endpoint fall back to
// environment variables (OPENAI_API_KEY, OPENAI_BASE_URL,
// OPENAI_ALLOWED_HOSTS, VIRALCLIP_EMBEDDING_MODEL) when the file leaves
// them empty.
package config
