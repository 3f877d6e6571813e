package tracker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// rowTimeLayout is the timestamp format displayed inside a torrent row.
const rowTimeLayout = "Jan 02 2006, 15:04"

// RecencyWindow is the tolerance used to accept the newest owned row as the
// torrent this submission just created.
const RecencyWindow = 2 * time.Minute

var (
	userIDPattern  = regexp.MustCompile(`var userid = (\d+);`)
	authKeyPattern = regexp.MustCompile(`var authkey = "([^"]+)";`)
	passKeyPattern = regexp.MustCompile(`passkey=([^&"]+)&`)
	userHrefID     = regexp.MustCompile(`user\.php\?id=(\d+)`)
)

type ownedRow struct {
	torrentID string
	uploaded  time.Time
}

// ExtractDownloadLink parses the upload response page and constructs the
// direct download URL for the torrent the current user just created. It fails
// when the page carries no credentials, no owned rows, or when the newest
// owned row is older than the recency window; callers treat any failure as
// "this wasn't our upload" and fall back to the response URL.
func ExtractDownloadLink(html, baseURL string, now time.Time) (string, error) {
	userID, err := matchOne(userIDPattern, html, "userid")
	if err != nil {
		return "", err
	}
	authKey, err := matchOne(authKeyPattern, html, "authkey")
	if err != nil {
		return "", err
	}
	passKey, err := matchOne(passKeyPattern, html, "passkey")
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse response page: %w", err)
	}

	var rows []ownedRow
	doc.Find(`[id^='torrent_']`).Each(func(_ int, sel *goquery.Selection) {
		row, ok := parseRow(sel, userID)
		if ok {
			rows = append(rows, row)
		}
	})
	if len(rows) == 0 {
		return "", errors.New("no torrent rows owned by the current user")
	}

	newest := rows[0]
	for _, row := range rows[1:] {
		if row.uploaded.After(newest.uploaded) {
			newest = row
		}
	}
	if now.Sub(newest.uploaded) >= RecencyWindow {
		return "", fmt.Errorf("newest owned torrent is from %s, outside the recency window", newest.uploaded.Format(rowTimeLayout))
	}

	return fmt.Sprintf("%s/torrents.php?action=download&id=%s&authkey=%s&torrent_pass=%s",
		strings.TrimRight(baseURL, "/"), newest.torrentID, authKey, passKey), nil
}

// parseRow extracts the torrent id and upload timestamp from a torrent row
// element, rejecting rows owned by other users.
func parseRow(sel *goquery.Selection, userID string) (ownedRow, bool) {
	ownerHref, ok := sel.Find(`a[href*='user.php?id=']`).First().Attr("href")
	if !ok {
		return ownedRow{}, false
	}
	ownerMatch := userHrefID.FindStringSubmatch(ownerHref)
	if ownerMatch == nil || ownerMatch[1] != userID {
		return ownedRow{}, false
	}

	id := sel.AttrOr("id", "")
	idx := strings.Index(id, "_")
	if idx < 0 || idx == len(id)-1 {
		return ownedRow{}, false
	}

	title, ok := sel.Find("span[title]").First().Attr("title")
	if !ok {
		return ownedRow{}, false
	}
	uploaded, err := time.ParseInLocation(rowTimeLayout, title, time.Local)
	if err != nil {
		return ownedRow{}, false
	}

	return ownedRow{torrentID: id[idx+1:], uploaded: uploaded}, true
}

func matchOne(pattern *regexp.Regexp, html, what string) (string, error) {
	match := pattern.FindStringSubmatch(html)
	if match == nil {
		return "", fmt.Errorf("response page carries no %s", what)
	}
	return match[1], nil
}
