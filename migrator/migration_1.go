package migrator

const migration_1 = `
CREATE TABLE <SCHEMA_PLACEHOLDER>.ld_submissions(
    id uuid not null default(uuid_generate_v4()),
    lab_request_id int not null,
    test_type varchar not null,
    username varchar not null default(''),
    status varchar not null,
    result_details text not null default(''),
    result_id int,
    bill_id int,
    error text,
    created_at timestamp not null default(timezone('utc', now())),
    constraint pk_ld_submissions primary key (id)
);
`
