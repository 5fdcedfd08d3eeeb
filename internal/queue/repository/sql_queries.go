package repository

const (
	enqueueJobQuery = `INSERT INTO jobs (job_id, source_path, profile_id, priority, size_bytes, estimated_savings_bytes, status)
					VALUES ($1, $2, $3, $4, $5, $6, 'pending')
					ON CONFLICT (source_path) WHERE status IN ('pending', 'processing', 'paused') DO NOTHING
					RETURNING job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at`

	getJobQuery = `SELECT job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at
					FROM jobs WHERE job_id = $1`

	getJobsCountQuery = `SELECT COUNT(job_id) FROM jobs WHERE ($1 = '' OR status = $1)`

	listJobsQuery = `SELECT job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at
					FROM jobs WHERE ($1 = '' OR status = $1)
					ORDER BY priority DESC, created_at ASC OFFSET $2 LIMIT $3`

	nextEligibleQuery = `SELECT job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at
					FROM jobs WHERE status = 'pending' ORDER BY %s LIMIT 1`

	admitJobQuery = `UPDATE jobs SET status = 'processing', started_at = NOW(), progress = 0, error_message = NULL
					WHERE job_id = $1 AND status = 'pending'
					RETURNING job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at`

	updateProgressQuery = `UPDATE jobs SET progress = GREATEST(progress, LEAST($2, 100.0))
					WHERE job_id = $1 AND status = 'processing'`

	completeJobQuery = `UPDATE jobs SET status = 'completed', progress = 100, completed_at = NOW()
					WHERE job_id = $1 AND status = 'processing'`

	failJobQuery = `UPDATE jobs SET status = 'failed', error_message = $2, completed_at = NOW()
					WHERE job_id = $1 AND status = 'processing'`

	pauseJobQuery = `UPDATE jobs SET status = 'paused'
					WHERE job_id = $1 AND status = 'processing'`

	requeueJobQuery = `UPDATE jobs SET status = 'pending', progress = 0, error_message = NULL, started_at = NULL, completed_at = NULL
					WHERE job_id = $1 AND status IN ('failed', 'completed', 'paused')
					RETURNING job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at`

	reassignProfileQuery = `UPDATE jobs SET profile_id = $2
					WHERE job_id = $1 AND status = 'pending'
					RETURNING job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at`

	setPriorityQuery = `UPDATE jobs SET priority = $2
					WHERE job_id = $1 AND status = 'pending'
					RETURNING job_id, source_path, status, progress, priority, profile_id, size_bytes, estimated_savings_bytes, error_message, created_at, started_at, completed_at`

	deleteJobQuery = `DELETE FROM jobs WHERE job_id = $1 AND status <> 'processing'`

	reprioritizeQuery = `UPDATE jobs SET priority = GREATEST(1, 1000 - ranked.rank)
					FROM (SELECT job_id, ROW_NUMBER() OVER (ORDER BY %s) AS rank FROM jobs WHERE status = 'pending') AS ranked
					WHERE jobs.job_id = ranked.job_id`

	insertHistoryQuery = `INSERT INTO history (job_id, source_path, original_size_bytes, new_size_bytes, savings_bytes, encode_seconds, codec, container, completed_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	getStatsQuery = `SELECT
					COUNT(*) FILTER (WHERE status = 'pending') AS pending,
					COUNT(*) FILTER (WHERE status = 'processing') AS processing,
					COUNT(*) FILTER (WHERE status = 'paused') AS paused,
					COUNT(*) FILTER (WHERE status = 'completed') AS completed,
					COUNT(*) FILTER (WHERE status = 'failed') AS failed
					FROM jobs`

	getHistoryTotalsQuery = `SELECT COALESCE(SUM(savings_bytes), 0) AS total_savings_bytes, COALESCE(SUM(encode_seconds), 0)::bigint AS total_encode_seconds FROM history`

	getHistoryCountQuery = `SELECT COUNT(record_id) FROM history`

	listHistoryQuery = `SELECT record_id, job_id, source_path, original_size_bytes, new_size_bytes, savings_bytes, encode_seconds, codec, container, completed_at
					FROM history ORDER BY completed_at DESC OFFSET $1 LIMIT $2`
)

// orderClauses maps a sort strategy to its ORDER BY clause. The clause is
// interpolated, never user input: callers validate the strategy first.
var orderClauses = map[string]string{
	"priority": "priority DESC, created_at ASC",
	"size":     "size_bytes DESC, created_at ASC",
	"savings":  "estimated_savings_bytes DESC, created_at ASC",
	"path":     "source_path ASC",
}
