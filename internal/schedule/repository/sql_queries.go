package repository

const (
	getScheduleQuery = `SELECT enabled, days_of_week, start_time, end_time, timezone, use_os_rest_hours, manual_override_active, max_concurrent_jobs, updated_at
					FROM schedule_config WHERE id = 1`

	updateScheduleQuery = `UPDATE schedule_config SET
					enabled = COALESCE($1, enabled),
					days_of_week = COALESCE($2, days_of_week),
					start_time = COALESCE($3, start_time),
					end_time = COALESCE($4, end_time),
					timezone = COALESCE($5, timezone),
					use_os_rest_hours = COALESCE($6, use_os_rest_hours),
					max_concurrent_jobs = COALESCE($7, max_concurrent_jobs),
					updated_at = NOW()
					WHERE id = 1
					RETURNING enabled, days_of_week, start_time, end_time, timezone, use_os_rest_hours, manual_override_active, max_concurrent_jobs, updated_at`

	setManualOverrideQuery = `UPDATE schedule_config SET manual_override_active = $1, updated_at = NOW()
					WHERE id = 1
					RETURNING enabled, days_of_week, start_time, end_time, timezone, use_os_rest_hours, manual_override_active, max_concurrent_jobs, updated_at`
)
