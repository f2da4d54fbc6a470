package main

import (
	"context"
	"fmt"
	"io/fs"

	pkgerr "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	v1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/rest"
)

const defaultConfigMapKey = "hosts"

type ConfigMapHostsfilePersister struct {
	namespace       string
	name            string
	key             string
	configMapClient v1.ConfigMapInterface
}

func NewConfigMapHostsfilePersister(namespace, name, key string) (*ConfigMapHostsfilePersister, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, pkgerr.Wrap(err, "creating in-cluster config")
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, pkgerr.Wrap(err, "creating Kubernetes client")
	}

	return newConfigMapHostsfilePersister(clientset, namespace, name, key), nil
}

func newConfigMapHostsfilePersister(client kubernetes.Interface, namespace, name, key string) *ConfigMapHostsfilePersister {
	if key == "" {
		key = defaultConfigMapKey
	}
	return &ConfigMapHostsfilePersister{
		namespace:       namespace,
		name:            name,
		key:             key,
		configMapClient: client.CoreV1().ConfigMaps(namespace),
	}
}

func (p *ConfigMapHostsfilePersister) target() string {
	return fmt.Sprintf("configmap %s/%s[%s]", p.namespace, p.name, p.key)
}

func (p *ConfigMapHostsfilePersister) Read(ctx context.Context) (string, error) {
	cm, err := p.configMapClient.Get(ctx, p.name, metav1.GetOptions{})
	if err != nil {
		return "", newIOError("read", p.target(), err)
	}

	contents, ok := cm.Data[p.key]
	if !ok {
		return "", newIOError("read", p.target(), fmt.Errorf("key %q: %w", p.key, fs.ErrNotExist))
	}

	return contents, nil
}

// Write stores contents under the configured key. Other keys, labels and
// annotations of an existing ConfigMap are kept.
func (p *ConfigMapHostsfilePersister) Write(ctx context.Context, contents string) error {
	cm, err := p.configMapClient.Get(ctx, p.name, metav1.GetOptions{})
	if err == nil {
		if cm.Data == nil {
			cm.Data = map[string]string{}
		}
		cm.Data[p.key] = contents
		if _, err = p.configMapClient.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
			return newIOError("write", p.target(), err)
		}
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return newIOError("write", p.target(), err)
	}

	log.Warn().Str("configmap", p.namespace+"/"+p.name).Msg("configmap missing, creating it")
	cm = &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      p.name,
			Namespace: p.namespace,
		},
		Data: map[string]string{
			p.key: contents,
		},
	}
	if _, err = p.configMapClient.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
		return newIOError("write", p.target(), err)
	}
	log.Info().Str("configmap", p.namespace+"/"+p.name).Msg("created configmap")
	return nil
}
