package user

type Permission string

const (
	// Roster
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Schedules
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"

	// Attendance events
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceIngest Permission = "attendance.ingest"

	// Reports & dashboard
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAttendanceView,
		PermissionAttendanceIngest,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleManager: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAttendanceView,
		PermissionAttendanceIngest,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleEmployee: {
		PermissionScheduleView,
		PermissionReportsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
