package migrator

const migration_2 = `
CREATE INDEX idx_ld_submissions_lab_request_id ON <SCHEMA_PLACEHOLDER>.ld_submissions(lab_request_id, created_at DESC);
`
