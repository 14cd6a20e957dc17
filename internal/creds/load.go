package creds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

// LoadCSV reads the credential table {Usuario, PIN, SSR Autorizados}. The
// header row is detected by the first column title and skipped. Fully blank
// rows are dropped silently; rows carrying partial data (a user without a
// PIN, a PIN without a user) surface a load-time error instead of producing
// a corrupted User.
func LoadCSV(r io.Reader) ([]User, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var users []User
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("credentials csv: %w", err)
		}
		line++

		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		username, pin, projects := field(0), field(1), field(2)

		if line == 1 && strings.EqualFold(username, "Usuario") {
			continue
		}
		if username == "" && pin == "" && projects == "" {
			continue
		}
		if username == "" || pin == "" {
			return nil, fmt.Errorf("credentials csv line %d: %w: user and PIN are required", line, common.ErrMalformedRow)
		}

		users = append(users, User{
			Username: username,
			PIN:      pin,
			Projects: SplitProjects(projects),
			Admin:    NormalizeUsername(username) == AdminUsername,
		})
	}

	return users, nil
}
