package employee

import (
	"bytes"
	"context"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

var _ = ginkgo.Describe("Importer", func() {
	var (
		importer *Importer
		repo     *mockEmployeeRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockEmployeeRepository()
		bus := events.NewEventBus(testLogger())
		service := NewService(repo, &fakeChecklists{}, bus, noopAudit{}, testLogger())
		importer = NewImporter(service, testLogger())
	})

	ginkgo.Describe("Import", func() {
		ginkgo.Context("with a well-formed CSV", func() {
			ginkgo.It("should create one employee per row", func() {
				// Given
				csvData := strings.Join([]string{
					"Name,Employee Code,Email,Department,Manager,Start Date",
					"Asha Verma,BP001,asha@example.com,Engineering,Rohit,2024-01-15",
					"Nikhil Rao,BP002,nikhil@example.com,Design,Rohit,2024-02-01",
				}, "\n")

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "employees.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ImportedCount).To(gomega.Equal(2))
				gomega.Expect(result.TotalRows).To(gomega.Equal(2))
				gomega.Expect(result.Errors).To(gomega.BeEmpty())
				gomega.Expect(repo.byID).To(gomega.HaveLen(2))
			})
		})

		ginkgo.Context("with header spelling variants", func() {
			ginkgo.It("should resolve aliases like Employee ID and Joining Date", func() {
				// Given
				csvData := strings.Join([]string{
					"Full Name,Employee ID,Email Address,Dept,Reporting To,Joining Date,Designation,DOB",
					"Meera Iyer,BP003,meera@example.com,HR,Asha,2023-11-20,Recruiter,1994-03-12",
				}, "\n")

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "sheet.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ImportedCount).To(gomega.Equal(1))

				emp, err := repo.GetByCode("BP003")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(emp).ToNot(gomega.BeNil())
				gomega.Expect(emp.Name).To(gomega.Equal("Meera Iyer"))
				gomega.Expect(emp.Position).To(gomega.Equal("Recruiter"))
				gomega.Expect(emp.Birthday).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("with alternate date formats", func() {
			ginkgo.It("should normalize dates to the canonical layout", func() {
				// Given
				csvData := strings.Join([]string{
					"Name,Employee Code,Email,Department,Manager,Start Date",
					"Asha Verma,BP001,asha@example.com,Engineering,Rohit,15-01-2024",
				}, "\n")

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "sheet.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ImportedCount).To(gomega.Equal(1))

				emp, _ := repo.GetByCode("BP001")
				gomega.Expect(emp.StartDate.Format("2006-01-02")).To(gomega.Equal("2024-01-15"))
			})
		})

		ginkgo.Context("when required columns are missing", func() {
			ginkgo.It("should return a 400 naming the missing columns", func() {
				// Given
				csvData := "Name,Email\nAsha,asha@example.com"

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "sheet.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(result).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeImportMissingCols))
				gomega.Expect(appErr.Message).To(gomega.ContainSubstring("Employee ID"))
				gomega.Expect(appErr.Message).To(gomega.ContainSubstring("Start Date"))
			})
		})

		ginkgo.Context("when some rows are bad", func() {
			ginkgo.It("should import the good rows and report the bad ones", func() {
				// Given
				csvData := strings.Join([]string{
					"Name,Employee Code,Email,Department,Manager,Start Date",
					"Asha Verma,BP001,asha@example.com,Engineering,Rohit,2024-01-15",
					"No Date,BP002,nodate@example.com,Engineering,Rohit,whenever",
					"Dup Code,BP001,dup@example.com,Engineering,Rohit,2024-01-15",
				}, "\n")

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "sheet.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ImportedCount).To(gomega.Equal(1))
				gomega.Expect(result.TotalRows).To(gomega.Equal(3))
				gomega.Expect(result.Errors).To(gomega.HaveLen(2))
				gomega.Expect(result.Errors[0]).To(gomega.HavePrefix("Row 3:"))
				gomega.Expect(result.Errors[1]).To(gomega.HavePrefix("Row 4:"))
			})
		})

		ginkgo.Context("with blank rows", func() {
			ginkgo.It("should skip them without counting them", func() {
				// Given
				csvData := strings.Join([]string{
					"Name,Employee Code,Email,Department,Manager,Start Date",
					"Asha Verma,BP001,asha@example.com,Engineering,Rohit,2024-01-15",
					",,,,,",
					"Nikhil Rao,BP002,nikhil@example.com,Design,Rohit,2024-02-01",
				}, "\n")

				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "sheet.csv", strings.NewReader(csvData))

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ImportedCount).To(gomega.Equal(2))
				gomega.Expect(result.TotalRows).To(gomega.Equal(2))
			})
		})

		ginkgo.Context("with an unsupported file type", func() {
			ginkgo.It("should return a 400", func() {
				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "employees.pdf", strings.NewReader("data"))

				// Then
				gomega.Expect(result).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeImportUnreadable))
			})
		})

		ginkgo.Context("with a corrupt spreadsheet", func() {
			ginkgo.It("should return a 400", func() {
				// When
				result, err := importer.Import(ctx, "actor-1", "hr@example.com", "employees.xlsx", strings.NewReader("not a zip"))

				// Then
				gomega.Expect(result).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeImportUnreadable))
			})
		})
	})

	ginkgo.Describe("Template", func() {
		ginkgo.It("should produce a workbook the importer itself accepts", func() {
			// When
			data, err := importer.Template()

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(data))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows(f.GetSheetName(0))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(2))

			_, missing := mapHeader(rows[0])
			gomega.Expect(missing).To(gomega.BeEmpty())
		})

		ginkgo.It("should name the template sheet and carry an instructions sheet", func() {
			// When
			data, err := importer.Template()

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(data))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			defer f.Close()

			gomega.Expect(f.GetSheetName(0)).To(gomega.Equal("Employee Template"))
			gomega.Expect(f.GetSheetList()).To(gomega.ContainElements("Employee Template", "Instructions"))

			notes, err := f.GetRows("Instructions")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(notes).ToNot(gomega.BeEmpty())
		})
	})
})
