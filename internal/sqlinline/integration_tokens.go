package sqlinline

const QSelectIntegrationToken = `--sql 5f2c8e91-3a7b-4d06-b1e4-9c8d2a6f0e37
select token
from integration_tokens
where provider = $1::text
  and token <> ''
limit 1;
`

const QUpsertIntegrationToken = `--sql 0e7a4c13-8b2d-4f59-a6c1-d3e9f5b7a248
insert into integration_tokens (id, provider, token, properties, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, coalesce($3::jsonb, '{}'::jsonb), now(), now())
on conflict (provider) do update set
    token = excluded.token,
    properties = integration_tokens.properties || excluded.properties,
    updated_at = now();
`
