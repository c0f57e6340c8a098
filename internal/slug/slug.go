package slug

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
)

// titleMaxLen caps the title part of a generated code. Two titles that collapse
// to the same prefix produce indistinguishable codes; resolution returns the
// first match.
const titleMaxLen = 20

// Generate derives the public application code for a job title. The suffix is
// the last four digits of the creation epoch-millisecond timestamp, so codes
// for the same title differ across creations without being globally unique.
func Generate(title string, createdAt time.Time) string {
	ms := createdAt.UnixMilli()
	if ms < 0 {
		ms = -ms
	}
	return CleanTitle(title) + "-" + fmt.Sprintf("%04d", ms%10000)
}

// CleanTitle lowercases the title, strips everything outside [a-z0-9\s],
// collapses whitespace runs into single hyphens and truncates the result.
func CleanTitle(title string) string {
	lowered := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if b.Len() > 0 {
				pendingHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) > titleMaxLen {
		cleaned = strings.TrimRight(cleaned[:titleMaxLen], "-")
	}
	return cleaned
}

// TitlePart returns everything before the trailing hyphen-delimited timestamp
// token of an incoming code.
func TitlePart(code string) string {
	idx := strings.LastIndex(code, "-")
	if idx < 0 {
		return code
	}
	return code[:idx]
}

// Resolve maps an incoming code back to a job by regenerating each open job's
// title part and comparing for exact equality, ignoring the timestamp suffix.
// The first job in the given ordering wins; jobs that are not open for
// applications are never resolvable.
func Resolve(code string, jobs []job.Job) (*job.Job, error) {
	want := TitlePart(strings.TrimSpace(code))
	if want == "" {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	for i := range jobs {
		if !jobs[i].OpenForApplications() {
			continue
		}
		if CleanTitle(jobs[i].Title) == want {
			return &jobs[i], nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "job not found", nil)
}
