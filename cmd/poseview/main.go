package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/prefabs"
	"github.com/milk9111/brawler/skeleton"
)

const (
	viewSize = 512
	floorY   = 420
)

// viewer loops one clip at a time. Left/Right switch clips, F flips the
// facing, and Space replays a finished clip.
type viewer struct {
	names   []string
	current int
	anim    *anim.Animator
	rig     skeleton.Rig
	color   color.Color
	dir     float64
	step    time.Duration
	hold    time.Duration
}

func (v *viewer) play(i int, force bool) {
	v.current = (i + len(v.names)) % len(v.names)
	v.anim.Play(v.names[v.current], force)
	v.hold = 0
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.play(v.current+1, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.play(v.current-1, true)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.play(v.current, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.dir = -v.dir
	}

	v.anim.Update(v.step)
	// Finished one-shot clips rest on their last frame for a moment, then replay.
	if v.anim.Done() {
		v.hold += v.step
		if v.hold >= 500*time.Millisecond {
			v.play(v.current, true)
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x14, 0x14, 0x1c, 0xff})
	vector.FillRect(screen, 0, floorY, viewSize, 4, color.RGBA{0x2a, 0x2a, 0x30, 0xff}, false)

	pose := v.anim.Pose()
	v.rig.Draw(screen, viewSize/2, v.rig.Hips(floorY, pose), pose, v.dir, v.color)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  (%d/%d)\n<- -> clip  F flip  SPACE replay",
		v.names[v.current], v.anim.Frame(), v.current+1, len(v.names)))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	character := flag.String("character", "Player1", "roster character whose clips to show")
	clip := flag.String("clip", "", "clip to start on")
	dir := flag.String("prefabs", "", "load prefabs from this directory instead of the embedded set")
	scale := flag.Float64("scale", 1, "skeleton scale")
	list := flag.Bool("list", false, "print the clip names and exit")
	flag.Parse()

	if *dir != "" {
		prefabs.SetDir(*dir)
	}
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Fatal(err)
	}
	ch, err := bundle.Roster.Character(*character)
	if err != nil {
		log.Fatal(err)
	}
	lib := bundle.Libraries[ch.ID]
	names := lib.Names()
	if *list {
		for _, n := range names {
			fmt.Fprintln(os.Stdout, n)
		}
		return
	}
	if len(names) == 0 {
		log.Fatalf("character %s has no clips", ch.ID)
	}

	v := &viewer{
		names: names,
		anim:  anim.NewAnimator(lib),
		rig:   skeleton.Rig{Scale: *scale},
		color: ch.Color.RGBA8(color.RGBA{0xff, 0xff, 0xff, 0xff}),
		dir:   1,
		step:  time.Second / 60,
	}
	start := 0
	for i, n := range names {
		if n == *clip {
			start = i
		}
	}
	v.play(start, true)

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Pose Viewer - " + ch.Name)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
