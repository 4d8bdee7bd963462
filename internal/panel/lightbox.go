package panel

import (
	"path/filepath"
	"strings"
	"sync"

	"folderpick/internal/errors"
	"folderpick/internal/log"
)

// MediaKind is how the lightbox presents a file
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
	MediaAudio
	// MediaExternal files are handed to the system opener
	MediaExternal
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	case MediaExternal:
		return "external"
	}
	return "none"
}

var mediaByExt = map[string]MediaKind{
	"png": MediaImage, "jpg": MediaImage, "jpeg": MediaImage, "bmp": MediaImage,
	"gif": MediaImage, "webp": MediaImage, "svg": MediaImage,
	"mp4": MediaVideo, "webm": MediaVideo, "mov": MediaVideo, "mkv": MediaVideo, "avi": MediaVideo,
	"mp3": MediaAudio, "wav": MediaAudio, "ogg": MediaAudio, "flac": MediaAudio,
}

// KindOf classifies path by its extension
func KindOf(path string) MediaKind {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if k, ok := mediaByExt[ext]; ok {
		return k
	}
	return MediaExternal
}

// Player starts playback of a media URL
type Player interface {
	Play(src string) (Playback, error)
}

// Playback is a running player
type Playback interface {
	Stop() error
}

// Opener hands a URL to whatever the system uses to show it
type Opener interface {
	Open(target string) error
}

// Overlay is the full-screen preview. There is one per process, reached
// through Lightbox.
type Overlay struct {
	mu       sync.Mutex
	visible  bool
	kind     MediaKind
	path     string
	src      string
	playback Playback
	player   Player
	opener   Opener
}

var (
	lightboxOnce sync.Once
	lightbox     *Overlay
)

// Lightbox returns the process-wide overlay, creating it on first use
func Lightbox() *Overlay {
	lightboxOnce.Do(func() {
		lightbox = &Overlay{
			player: ExecPlayer{},
			opener: SystemOpener{},
		}
	})
	return lightbox
}

// Configure replaces the player and opener
func (o *Overlay) Configure(player Player, opener Opener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if player != nil {
		o.player = player
	}
	if opener != nil {
		o.opener = opener
	}
}

// Open shows path, whose bytes are served at src. Files that are not
// image, video or audio go to the system opener and the overlay stays
// hidden.
func (o *Overlay) Open(path, src string) error {
	kind := KindOf(path)

	o.mu.Lock()
	defer o.mu.Unlock()

	if kind == MediaExternal {
		if err := o.opener.Open(src); err != nil {
			return errors.WrapKind(err, errors.PreviewFailed, "open "+path)
		}
		return nil
	}

	o.stopLocked()
	o.visible = true
	o.kind = kind
	o.path = path
	o.src = src

	if kind == MediaVideo || kind == MediaAudio {
		pb, err := o.player.Play(src)
		if err != nil {
			o.visible = false
			o.kind = MediaNone
			o.path, o.src = "", ""
			return errors.WrapKind(err, errors.PreviewFailed, "play "+path)
		}
		o.playback = pb
	}
	log.LogWithFields(log.F("path", path), log.F("kind", kind.String())).Debug("lightbox opened")
	return nil
}

// Close stops playback, clears the source, then hides the overlay
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.visible {
		return
	}
	o.stopLocked()
	o.src = ""
	o.path = ""
	o.kind = MediaNone
	o.visible = false
}

func (o *Overlay) stopLocked() {
	if o.playback == nil {
		return
	}
	if err := o.playback.Stop(); err != nil {
		log.LogWithError(err).Debug("stopping playback")
	}
	o.playback = nil
}

// Visible reports whether the overlay is shown
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Kind returns the kind of the shown media
func (o *Overlay) Kind() MediaKind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.kind
}

// Path returns the shown file, "" when hidden
func (o *Overlay) Path() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.path
}

// Source returns the media URL, "" when hidden
func (o *Overlay) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.src
}

// Playing reports whether a player process is attached
func (o *Overlay) Playing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.playback != nil
}
