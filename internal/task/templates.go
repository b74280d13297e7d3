package task

// TemplateEntry is one seed checklist item. DueDays 0 means the task carries
// no due date.
type TemplateEntry struct {
	Title       string
	Description string
	DueDays     int
}

// onboardingTemplate is the fixed, ordered onboarding checklist instantiated
// for every employee created in onboarding status.
var onboardingTemplate = []TemplateEntry{
	{Title: "Offer letter shared & signed", Description: "Share and get signed offer letter from new employee", DueDays: 1},
	{Title: "Employee details form submitted", Description: "Collect all required personal and professional details", DueDays: 3},
	{Title: "Laptop/system allocation", Description: "Allocate laptop and necessary hardware to employee", DueDays: 5},
	{Title: "Email & communication tools created", Description: "Create email account and setup communication tools", DueDays: 2},
	{Title: "HRMS/project access setup", Description: "Provide access to HRMS and relevant project management tools", DueDays: 7},
	{Title: "Welcome kit shared", Description: "Share welcome kit and company swag", DueDays: 5},
	{Title: "Induction/training scheduled", Description: "Schedule orientation and initial training sessions", DueDays: 7},
	{Title: "Background verification initiated", Description: "Initiate background and reference checks", DueDays: 3},
	{Title: "ID card issued", Description: "Print and hand over the employee ID card", DueDays: 5},
	{Title: "Bank account details collected", Description: "Collect salary account details for payroll", DueDays: 5},
	{Title: "Payroll enrollment completed", Description: "Add employee to the payroll system", DueDays: 7},
	{Title: "PF & insurance enrollment", Description: "Enroll employee in provident fund and insurance plans", DueDays: 10},
	{Title: "Workstation/desk assigned", Description: "Assign a desk and set up the physical workstation", DueDays: 3},
	{Title: "Team introduction meeting", Description: "Introduce new employee to the immediate team", DueDays: 2},
	{Title: "Buddy/mentor assigned", Description: "Pair the employee with an onboarding buddy", DueDays: 3},
	{Title: "Company policies acknowledged", Description: "Share employee handbook and collect acknowledgement", DueDays: 7},
	{Title: "NDA & employment agreement signed", Description: "Collect signed NDA and employment agreement", DueDays: 2},
	{Title: "Access card & office keys issued", Description: "Issue building access card and keys where applicable", DueDays: 5},
	{Title: "Software licenses provisioned", Description: "Provision required software licenses and accounts", DueDays: 7},
	{Title: "First week check-in", Description: "HR check-in at the end of the first week", DueDays: 7},
	{Title: "30-day goals agreed", Description: "Agree initial 30-day goals with reporting manager", DueDays: 14},
	{Title: "Mandatory compliance training", Description: "Complete security and compliance training modules", DueDays: 14},
	{Title: "Probation review scheduled", Description: "Schedule the probation period review meeting", DueDays: 30},
	{Title: "Emergency contact recorded", Description: "Record emergency contact information", DueDays: 3},
	{Title: "Org chart & directory updated", Description: "Add employee to the org chart and internal directory", DueDays: 5},
}

// exitTemplate is the fixed, ordered exit checklist instantiated when an
// employee first enters exiting status.
var exitTemplate = []TemplateEntry{
	{Title: "Exit interview scheduled & completed", Description: "Conduct exit interview to gather feedback", DueDays: 7},
	{Title: "Knowledge transfer session", Description: "Complete knowledge transfer to replacement or team", DueDays: 14},
	{Title: "IT assets returned", Description: "Collect all company laptops, devices, and accessories", DueDays: 3},
	{Title: "Email access disabled", Description: "Disable email and revoke system access", DueDays: 1},
	{Title: "HR clearance completed", Description: "Complete HR clearance and documentation", DueDays: 5},
	{Title: "Full & Final settlement initiated", Description: "Process final salary and settlements", DueDays: 10},
	{Title: "Relieving letter issued", Description: "Issue relieving letter and experience certificate", DueDays: 7},
	{Title: "Resignation acceptance issued", Description: "Issue formal acceptance of resignation", DueDays: 1},
	{Title: "Notice period confirmed", Description: "Confirm notice period and last working day", DueDays: 2},
	{Title: "Project handover documented", Description: "Document open work items and hand over ownership", DueDays: 10},
	{Title: "Access card & keys returned", Description: "Collect building access card and office keys", DueDays: 3},
	{Title: "Software accounts deprovisioned", Description: "Revoke licenses and third-party accounts", DueDays: 3},
	{Title: "Finance clearance completed", Description: "Clear advances, reimbursements and dues", DueDays: 7},
	{Title: "Payroll exit processed", Description: "Remove employee from payroll after final run", DueDays: 14},
	{Title: "PF & insurance exit formalities", Description: "Process provident fund transfer and insurance closure", DueDays: 21},
	{Title: "Team transition announced", Description: "Announce the departure and transition plan to the team", DueDays: 5},
	{Title: "Directory & org chart updated", Description: "Remove employee from directory and org chart", DueDays: 7},
	{Title: "Alumni contact details recorded", Description: "Record forwarding contact details for future correspondence", DueDays: 14},
}

// OnboardingTemplateSize and ExitTemplateSize are exported for assertions on
// checklist generation.
var (
	OnboardingTemplateSize = len(onboardingTemplate)
	ExitTemplateSize       = len(exitTemplate)
)
