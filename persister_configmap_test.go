package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/lachlan2k/hostie/hostsfile"
)

func hostsConfigMap(data map[string]string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "external-dns-hostsfile", Namespace: "dns"},
		Data:       data,
	}
}

func TestConfigMapPersisterRead(t *testing.T) {
	ctx := context.Background()

	t.Run("existing key", func(t *testing.T) {
		client := fake.NewSimpleClientset(hostsConfigMap(map[string]string{"hosts": "10.0.0.1 a.local\n"}))
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")

		got, err := p.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.1 a.local\n", got)
	})

	t.Run("custom key", func(t *testing.T) {
		client := fake.NewSimpleClientset(hostsConfigMap(map[string]string{"lan": "10.0.0.2 b.local\n"}))
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "lan")

		got, err := p.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.2 b.local\n", got)
	})

	t.Run("missing key", func(t *testing.T) {
		client := fake.NewSimpleClientset(hostsConfigMap(map[string]string{"other": ""}))
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")

		_, err := p.Read(ctx)
		kind, ok := ioErrorKind(err)
		require.True(t, ok)
		assert.Equal(t, NotFound, kind)
	})

	t.Run("missing configmap", func(t *testing.T) {
		p := newConfigMapHostsfilePersister(fake.NewSimpleClientset(), "dns", "external-dns-hostsfile", "")

		_, err := p.Read(ctx)
		kind, ok := ioErrorKind(err)
		require.True(t, ok)
		assert.Equal(t, NotFound, kind)
		assert.Contains(t, err.Error(), "configmap dns/external-dns-hostsfile[hosts]")
	})
}

func TestConfigMapPersisterWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("updates existing configmap", func(t *testing.T) {
		client := fake.NewSimpleClientset(hostsConfigMap(map[string]string{"hosts": "10.0.0.1 a.local\n"}))
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")

		require.NoError(t, p.Write(ctx, "10.0.0.9 z.local\n"))

		cm, err := client.CoreV1().ConfigMaps("dns").Get(ctx, "external-dns-hostsfile", metav1.GetOptions{})
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.9 z.local\n", cm.Data["hosts"])
	})

	t.Run("keeps other keys and metadata", func(t *testing.T) {
		seeded := hostsConfigMap(map[string]string{
			"hosts": "10.0.0.1 a.local\n",
			"lan":   "10.0.0.2 b.local\n",
		})
		seeded.Labels = map[string]string{"team": "dns"}
		seeded.Annotations = map[string]string{"owner": "platform"}
		client := fake.NewSimpleClientset(seeded)
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "lan")

		require.NoError(t, p.Write(ctx, "10.0.0.3 c.local\n"))

		cm, err := client.CoreV1().ConfigMaps("dns").Get(ctx, "external-dns-hostsfile", metav1.GetOptions{})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"hosts": "10.0.0.1 a.local\n",
			"lan":   "10.0.0.3 c.local\n",
		}, cm.Data)
		assert.Equal(t, "dns", cm.Labels["team"])
		assert.Equal(t, "platform", cm.Annotations["owner"])
	})

	t.Run("fills a configmap without data", func(t *testing.T) {
		client := fake.NewSimpleClientset(hostsConfigMap(nil))
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")

		require.NoError(t, p.Write(ctx, "10.0.0.4 d.local\n"))

		got, err := p.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.4 d.local\n", got)
	})

	t.Run("creates missing configmap", func(t *testing.T) {
		client := fake.NewSimpleClientset()
		p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")

		require.NoError(t, p.Write(ctx, "10.0.0.9 z.local\n"))

		got, err := p.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.9 z.local\n", got)
	})
}

func TestConfigMapPersisterMutate(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset(hostsConfigMap(map[string]string{
		"hosts": "# managed by hostie\n127.0.0.1 localhost\n",
	}))
	p := newConfigMapHostsfilePersister(client, "dns", "external-dns-hostsfile", "")
	editor := hostsfile.NewEditor()

	require.NoError(t, mutate(ctx, p, func(tb hostsfile.Table) (hostsfile.Table, error) {
		return editor.Add(tb, "10.0.0.1", "a.local")
	}))

	got, err := p.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# managed by hostie\n127.0.0.1 localhost\n10.0.0.1 a.local\n", got)
}
