package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleFaculty RoleType = "faculty"
	RoleAdmin   RoleType = "admin"
)

// ApprovalStatus is the admin-controlled gate on a student profile
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Track is the internship specialization a student is enrolled in
type Track string

const (
	TrackVLSI Track = "vlsi"
	TrackAIML Track = "ai-ml"
	TrackMERN Track = "mern"
	TrackJava Track = "java"
)

// SkillLevel is a student's self-assessed proficiency
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// LeaveType categorizes a leave request
type LeaveType string

const (
	LeaveSick   LeaveType = "sick"
	LeaveCasual LeaveType = "casual"
)

// LeaveStatus is the review state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// QueryCategory classifies a support query
type QueryCategory string

const (
	QueryCourse   QueryCategory = "course"
	QueryFaculty  QueryCategory = "faculty"
	QuerySchedule QueryCategory = "schedule"
	QueryWork     QueryCategory = "work"
	QueryOther    QueryCategory = "other"
)

// ValidTrack reports whether t is one of the fixed internship tracks
func ValidTrack(t Track) bool {
	switch t {
	case TrackVLSI, TrackAIML, TrackMERN, TrackJava:
		return true
	}
	return false
}

// ValidSkillLevel reports whether s is a known skill level
func ValidSkillLevel(s SkillLevel) bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// ValidQueryCategory reports whether c is a known query category
func ValidQueryCategory(c QueryCategory) bool {
	switch c {
	case QueryCourse, QueryFaculty, QuerySchedule, QueryWork, QueryOther:
		return true
	}
	return false
}
