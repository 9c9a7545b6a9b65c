// Copyright 2025 DevConsole Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mailer

import (
	"bytes"
	"html/template"
)

var submissionReceivedTpl = template.Must(template.New("submissionReceived").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Submission received</h2>
  <p>Thanks for submitting <strong>{{.AppName}}</strong>.</p>
  <p>Your app is now in the review queue. We will email you again once a
  moderator has taken a look.</p>
  <p style="color: #888; font-size: 12px;">DevConsole</p>
</div>
`))

var reviewResultTpl = template.Must(template.New("reviewResult").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Review update</h2>
  <p>Your app <strong>{{.AppName}}</strong> has been <strong>{{.Status}}</strong>.</p>
  {{if .Notes}}<p>Reviewer notes:</p><blockquote>{{.Notes}}</blockquote>{{end}}
  {{if .Published}}<p>It is now live on the store.</p>{{else}}<p>You can address
  the notes above and submit an update at any time.</p>{{end}}
  <p style="color: #888; font-size: 12px;">DevConsole</p>
</div>
`))

func renderSubmissionReceived(appName string) string {
	var buf bytes.Buffer
	_ = submissionReceivedTpl.Execute(&buf, struct{ AppName string }{appName})
	return buf.String()
}

func renderReviewResult(appName, status, notes string) string {
	var buf bytes.Buffer
	_ = reviewResultTpl.Execute(&buf, struct {
		AppName  string
		Status   string
		Notes    string
		Published bool
	}{appName, status, notes, status == "published"})
	return buf.String()
}
