package parser

import (
	"net/url"
	"regexp"
	"strings"
)

// AppInfo is the app identity derived from the App Store link.
type AppInfo struct {
	AppName     string
	AppID       string
	StoreRegion string
}

var (
	appIDPattern   = regexp.MustCompile(`/id(\d+)`)
	regionPattern  = regexp.MustCompile(`/([a-z]{2})/app/`)
	appNamePattern = regexp.MustCompile(`/([^/]+)/id\d+`)
)

// ExtractAppInfo derives the app name, numeric id, and store region from an
// App Store URL like https://apps.apple.com/us/app/demo-app/id123456.
// Extraction degrades to safe defaults instead of failing: the link has
// already passed URL validation, and a partial identity is still useful.
func ExtractAppInfo(appStoreLink string) AppInfo {
	info := AppInfo{AppName: "Unknown App", StoreRegion: "us"}

	u, err := url.Parse(strings.TrimSpace(appStoreLink))
	if err != nil {
		return info
	}
	path := u.EscapedPath()

	if m := appIDPattern.FindStringSubmatch(path); m != nil {
		info.AppID = m[1]
	}
	if m := regionPattern.FindStringSubmatch(path); m != nil {
		info.StoreRegion = m[1]
	}
	if m := appNamePattern.FindStringSubmatch(path); m != nil {
		info.AppName = kebabToTitle(m[1])
	}

	return info
}

// kebabToTitle converts "demo-virus-scanner" to "Demo Virus Scanner".
func kebabToTitle(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
