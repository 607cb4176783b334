package manifest

import "strings"

// ExtractImageTag returns the tag portion of an image reference.
//
// With a colon present the text after the last colon is returned, with a
// ${{...}} wrapper stripped by 3/2 characters or a ${...} wrapper by 2/1.
// Without a colon the whole trimmed reference is returned. The digest form
// ("app@sha256:abc") therefore yields the hash.
func ExtractImageTag(image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}

	i := strings.LastIndex(image, ":")
	if i < 0 {
		return image
	}

	tag := image[i+1:]
	switch {
	case strings.HasPrefix(tag, "${{") && strings.HasSuffix(tag, "}}") && len(tag) >= 5:
		return tag[3 : len(tag)-2]
	case strings.HasPrefix(tag, "${") && strings.HasSuffix(tag, "}") && len(tag) >= 3:
		return tag[2 : len(tag)-1]
	}
	return tag
}
