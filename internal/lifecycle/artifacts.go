package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gabriel-vasile/mimetype"
)

// Attachment is an artifact embedded in the scenario report.
type Attachment struct {
	FileName  string
	MediaType string
	Body      []byte
}

func newAttachment(fileName string, body []byte) Attachment {
	return Attachment{
		FileName:  fileName,
		MediaType: mimetype.Detect(body).String(),
		Body:      body,
	}
}

// captureFailure collects the diagnostics of a failed scenario. A capture that fails
// is logged and the remaining ones still run.
func (m *Manager) captureFailure(st *State, res *ScenarioResult) {
	sc := st.Context

	screenshotPath := filepath.Join(m.opts.ScreenshotsDir, fmt.Sprintf("%s (%d).png", st.Info.ArtifactName(), st.Info.Line))
	image, err := sc.Screenshot(screenshotPath)
	if err != nil {
		m.log.Error("Failed to capture screenshot: %v", err)
	} else {
		res.Screenshot = screenshotPath
		res.Attachments = append(res.Attachments, newAttachment(filepath.Base(screenshotPath), image))
		m.log.Info("Screenshot captured: %s", m.log.Highlight(screenshotPath))
	}

	html, err := sc.Content()
	if err != nil {
		m.log.Error("Failed to capture page HTML: %v", err)
	} else {
		res.Attachments = append(res.Attachments, newAttachment(st.Info.ArtifactName()+".html", []byte(html)))
		m.log.Info("Page HTML captured")
		m.writeSnapshot(st, html, res)
	}

	m.log.Info("Current URL: %s", m.log.Highlight(sc.URL()))
}

// writeSnapshot keeps the HTML on disk next to the screenshots and logs a readable digest in debug mode.
func (m *Manager) writeSnapshot(st *State, html string, res *ScenarioResult) {
	if m.opts.SnapshotsDir == "" {
		return
	}
	if err := os.MkdirAll(m.opts.SnapshotsDir, 0o755); err != nil {
		m.log.Warn("Failed to create snapshot directory: %v", err)
		return
	}
	path := filepath.Join(m.opts.SnapshotsDir, fmt.Sprintf("%s (%d).html", st.Info.ArtifactName(), st.Info.Line))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		m.log.Warn("Failed to write HTML snapshot: %v", err)
		return
	}
	res.Snapshot = path

	if m.log.IsDebugEnabled() {
		converter := md.NewConverter("", true, nil)
		digest, err := converter.ConvertString(html)
		if err != nil {
			m.log.Debug("Failed to convert snapshot to markdown: %v", err)
			return
		}
		m.log.Debug("Page at failure:\n%s", digest)
	}
}

// settleVideo keeps the recording of a failed scenario under a stable name and
// removes it otherwise. The context must already be closed.
func (m *Manager) settleVideo(st *State, videoPath string, res *ScenarioResult) {
	if !m.opts.RecordVideo || videoPath == "" {
		return
	}
	if res.Status != StatusFailed {
		if err := os.Remove(videoPath); err != nil && !os.IsNotExist(err) {
			m.log.Warn("Failed to delete video %s: %v", videoPath, err)
			return
		}
		m.log.Info("Video deleted (test %s)", res.Status)
		return
	}

	target := filepath.Join(m.opts.VideosDir, fmt.Sprintf("%s(%d).webm", st.Info.ArtifactName(), st.Info.Line))
	if err := os.Rename(videoPath, target); err != nil {
		m.log.Error("Failed to keep video: %v", err)
		return
	}
	res.Video = target
	body, err := os.ReadFile(target)
	if err != nil {
		m.log.Error("Failed to read video %s: %v", target, err)
		return
	}
	mime, err := mimetype.DetectFile(target)
	mediaType := "video/webm"
	if err == nil && mime.Is("video/webm") {
		mediaType = mime.String()
	}
	res.Attachments = append(res.Attachments, Attachment{FileName: filepath.Base(target), MediaType: mediaType, Body: body})
	m.log.Info("Video saved: %s", m.log.Highlight(target))
}
