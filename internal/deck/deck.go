// Package deck assembles the executive presentation. A .pptx file is a zip
// of OOXML parts, so the package writes the handful of parts PowerPoint
// needs directly instead of pulling in an office suite.
package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Slide is one slide of the deck. A slide carries a title plus either text
// (subtitle and/or bullets) or an embedded PNG, never both.
type Slide struct {
	Title     string
	Subtitle  string   // lead paragraph rendered under the title
	Bullets   []string // one bulleted paragraph per entry
	ImagePath string   // PNG embedded full-width when set
}

// Deck is the slide list in presentation order.
type Deck struct {
	Slides []Slide
}

// Slide geometry in EMU for a 16:9 canvas.
const (
	slideWidthEMU  = 12192000
	slideHeightEMU = 6858000

	titleOffX = 838200
	titleOffY = 365125
	titleCX   = 10515600
	titleCY   = 1325563

	bodyOffY = 1825625
	bodyCY   = 4351338

	emuPerPixel = 9525
	imageWidth  = 1000 * emuPerPixel
	imageHeight = 500 * emuPerPixel
	imageOffX   = (slideWidthEMU - imageWidth) / 2
	imageOffY   = 1900000
)

// Write renders the deck to a .pptx file at path.
func Write(deck *Deck, path string) error {
	if len(deck.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	zw := zip.NewWriter(file)
	if err := writeParts(zw, deck); err != nil {
		_ = zw.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("cannot finish %s: %w", path, err)
	}
	return nil
}

// writeParts emits every OOXML part of the package.
func writeParts(zw *zip.Writer, deck *Deck) error {
	n := len(deck.Slides)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", presentationXML(n)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, p := range parts {
		if err := addPart(zw, p.name, []byte(p.body)); err != nil {
			return err
		}
	}

	for i, slide := range deck.Slides {
		num := i + 1
		name := fmt.Sprintf("ppt/slides/slide%d.xml", num)
		if err := addPart(zw, name, []byte(slideXML(&slide))); err != nil {
			return err
		}
		rels := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num)
		if err := addPart(zw, rels, []byte(slideRelsXML(&slide, num))); err != nil {
			return err
		}
		if slide.ImagePath != "" {
			if err := addImage(zw, slide.ImagePath, num); err != nil {
				return err
			}
		}
	}
	return nil
}

// addPart stores one uncompressed-name zip entry.
func addPart(zw *zip.Writer, name string, body []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("part %s: %w", name, err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("part %s: %w", name, err)
	}
	return nil
}

// addImage copies a rendered PNG into the media folder.
func addImage(zw *zip.Writer, src string, num int) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("cannot read chart %s: %w", src, err)
	}
	return addPart(zw, fmt.Sprintf("ppt/media/image%d.png", num), data)
}

// escape encodes text for inclusion in an XML text node.
func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// contentTypesXML declares the content type of every part in the package.
func contentTypesXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

// presentationXML lists the master and the slides, and fixes the 16:9 size.
func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

// presentationRelsXML wires the presentation part to the master and slides.
func presentationRelsXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// slideXML renders one slide part: title shape, then bullets or a picture.
func slideXML(slide *Slide) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	writeTextShape(&b, 2, "Title", titleOffX, titleOffY, titleCX, titleCY, []paragraph{
		{text: slide.Title, size: 3200, bold: true},
	})

	if slide.ImagePath != "" {
		writePicture(&b, 3)
	} else if body := bodyParagraphs(slide); len(body) > 0 {
		writeTextShape(&b, 3, "Body", titleOffX, bodyOffY, titleCX, bodyCY, body)
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

// bodyParagraphs assembles a text slide's body: the subtitle lead paragraph
// followed by the bullet list.
func bodyParagraphs(slide *Slide) []paragraph {
	var paras []paragraph
	if slide.Subtitle != "" {
		paras = append(paras, paragraph{text: slide.Subtitle, size: 2000})
	}
	for _, text := range slide.Bullets {
		paras = append(paras, paragraph{text: text, size: 1600, bullet: true})
	}
	return paras
}

// paragraph is one rendered line of a text shape.
type paragraph struct {
	text   string
	size   int // font size in hundredths of a point
	bold   bool
	bullet bool
}

// writeTextShape emits a positioned text box with the given paragraphs.
func writeTextShape(b *strings.Builder, id int, name string, x, y, cx, cy int, paras []paragraph) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr/></p:nvSpPr>`, id, name)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, x, y, cx, cy)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, p := range paras {
		b.WriteString(`<a:p>`)
		if p.bullet {
			b.WriteString(`<a:pPr><a:buChar char="•"/></a:pPr>`)
		}
		bold := ""
		if p.bold {
			bold = ` b="1"`
		}
		fmt.Fprintf(b, `<a:r><a:rPr lang="en-US" sz="%d"%s/><a:t>%s</a:t></a:r>`, p.size, bold, escape(p.text))
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

// writePicture emits the embedded chart image, centered below the title.
func writePicture(b *strings.Builder, id int) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Chart"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id)
	b.WriteString(`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, imageOffX, imageOffY, imageWidth, imageHeight)
	b.WriteString(`</p:pic>`)
}

// slideRelsXML wires a slide to the shared layout and, if present, its image.
func slideRelsXML(slide *Slide, num int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if slide.ImagePath != "" {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.png"/>`, num)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}
