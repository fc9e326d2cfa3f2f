// Package postgres implements PostgreSQL persistence layer for Campus Schedule Hub.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ENROLLED COURSES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create enrolled courses table
-- Version: 001

-- The student's live enrollment list. Days are stored as lowercase weekday
-- names; time bounds stay as the raw clock strings from the published grid
-- so the fail-soft parser on the read side sees exactly what the sheet said.
CREATE TABLE IF NOT EXISTS enrolled_courses (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code VARCHAR(30) NOT NULL,
    section VARCHAR(30) NOT NULL,
    name VARCHAR(255) NOT NULL,
    days TEXT[] NOT NULL DEFAULT '{}',
    start_time VARCHAR(20) NOT NULL DEFAULT '',
    end_time VARCHAR(20) NOT NULL DEFAULT '',
    credit_hours INTEGER NOT NULL DEFAULT 0,
    start_date DATE,
    end_date DATE,
    initial_absences INTEGER NOT NULL DEFAULT 0,
    allowed_absences INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    -- Constraints for data integrity
    CONSTRAINT valid_credit_hours CHECK (credit_hours >= 0),
    CONSTRAINT valid_initial_absences CHECK (initial_absences >= 0),
    CONSTRAINT valid_allowed_absences CHECK (allowed_absences >= 0),

    -- One enrollment per (code, section) pair
    UNIQUE(code, section)
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_enrolled_courses_code ON enrolled_courses(code);
CREATE INDEX IF NOT EXISTS idx_enrolled_courses_section ON enrolled_courses(section);
CREATE INDEX IF NOT EXISTS idx_enrolled_courses_created_at ON enrolled_courses(created_at);

-- Updated_at trigger function for automatic timestamp updates
CREATE OR REPLACE FUNCTION update_updated_at_column()
RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = NOW();
    RETURN NEW;
END;
$$ language 'plpgsql';

DROP TRIGGER IF EXISTS update_enrolled_courses_updated_at ON enrolled_courses;
CREATE TRIGGER update_enrolled_courses_updated_at
    BEFORE UPDATE ON enrolled_courses
    FOR EACH ROW
    EXECUTE FUNCTION update_updated_at_column();
`

const migration001Down = `
DROP TRIGGER IF EXISTS update_enrolled_courses_updated_at ON enrolled_courses;
DROP FUNCTION IF EXISTS update_updated_at_column();
DROP TABLE IF EXISTS enrolled_courses;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE ATTENDANCE RECORDS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create attendance records table
-- Version: 002

-- One row per (course, date). Simulated records never reach this table;
-- the what-if engine works on in-memory copies only.
CREATE TABLE IF NOT EXISTS attendance_records (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    course_id UUID NOT NULL REFERENCES enrolled_courses(id) ON DELETE CASCADE,
    date DATE NOT NULL,
    status VARCHAR(20) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_attendance_status CHECK (status IN ('present', 'absent', 'cancelled', 'proxy')),
    UNIQUE(course_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendance_records_course ON attendance_records(course_id);
CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records(date);
CREATE INDEX IF NOT EXISTS idx_attendance_records_course_date ON attendance_records(course_id, date);
`

const migration002Down = `
DROP TABLE IF EXISTS attendance_records;
`
