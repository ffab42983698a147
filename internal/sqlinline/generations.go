package sqlinline

const QInsertGeneration = `--sql 3c9f2b71-5d4e-4a8b-9e1f-6a2d7c0b4e15
insert into generations(
  id,
  request_id,
  video_id,
  kind,
  status,
  error_kind,
  error_message,
  model,
  transcript_length,
  latency_ms,
  created_at
) values (
  $1::uuid,
  nullif($2::text, ''),
  nullif($3::text, ''),
  $4::text,
  $5::text,
  nullif($6::text, ''),
  nullif($7::text, ''),
  nullif($8::text, ''),
  $9::int,
  $10::bigint,
  $11::timestamptz
);
`

const QListRecentGenerations = `--sql 9b1e4d27-0c3a-4f6e-8d52-71a9e3c6b804
select
  id::text,
  coalesce(request_id, ''),
  coalesce(video_id, ''),
  kind,
  status,
  coalesce(error_kind, ''),
  coalesce(error_message, ''),
  coalesce(model, ''),
  transcript_length,
  latency_ms,
  created_at
from generations
order by created_at desc
limit $1::int;
`
