package markdown

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

var policy = bluemonday.UGCPolicy()

// RenderToHTML 将Markdown正文渲染为HTML并清除恶意标签
func RenderToHTML(content string) string {
	unsafe := blackfriday.MarkdownCommon([]byte(content))
	return string(policy.SanitizeBytes(unsafe))
}
